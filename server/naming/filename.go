// Package naming derives filesystem-safe, header-safe download filenames
// from track metadata.
package naming

import (
	"fmt"
	"regexp"
	"strings"
)

// unknownArtist is substituted when a track has a name but no artist.
const unknownArtist = "未知作者"

var illegalChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// Build derives a download filename from track metadata.
// Both name and artists present yields "name-artists"; only a name yields the
// name with the unknown-artist placeholder; neither yields "song_<id>".
// Characters forbidden in filenames are stripped, and a sanitized-to-empty
// result falls back to "song_<id>".
func Build(id, name, artists, ext string) string {
	name = strings.TrimSpace(name)
	artists = strings.TrimSpace(artists)

	if name != "" && artists == "" {
		artists = unknownArtist
	}

	var filename string
	switch {
	case name != "" && artists != "":
		filename = name + "-" + artists
	case name != "":
		filename = name
	default:
		filename = "song_" + id
	}

	filename = Sanitize(filename)
	if filename == "" {
		filename = "song_" + id
	}

	ext = strings.TrimLeft(strings.TrimSpace(ext), ".")
	if ext != "" {
		filename += "." + ext
	}
	return filename
}

// Sanitize strips characters illegal in common filesystems and control
// characters, then trims surrounding whitespace.
func Sanitize(filename string) string {
	return strings.TrimSpace(illegalChars.ReplaceAllString(filename, ""))
}

// ContentDisposition builds an attachment header value pairing an ASCII
// fallback filename with the RFC 5987 extended parameter, so both legacy and
// modern clients receive a usable name.
func ContentDisposition(filename string) string {
	fallback := make([]byte, 0, len(filename))
	for _, r := range filename {
		if r >= 0x20 && r <= 0x7e {
			fallback = append(fallback, byte(r))
		} else {
			fallback = append(fallback, '_')
		}
	}
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback, percentEncode(filename))
}

func percentEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range []byte(s) {
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

// GuessExt infers the audio file extension from the quality code when it
// unambiguously implies a format, then from the upstream content type,
// defaulting to mp3.
func GuessExt(quality, contentType string) string {
	if strings.ToLower(strings.TrimSpace(quality)) == "flac" {
		return "flac"
	}
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "flac"):
		return "flac"
	case strings.Contains(ct, "mpeg"), strings.Contains(ct, "mp3"):
		return "mp3"
	case strings.Contains(ct, "aac"):
		return "m4a"
	case strings.Contains(ct, "ogg"):
		return "ogg"
	}
	return "mp3"
}

// NormalizeQQQuality clamps a requested quality to the values the secondary
// provider accepts.
func NormalizeQQQuality(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "128" || v == "320" || v == "flac" {
		return v
	}
	return "128"
}
