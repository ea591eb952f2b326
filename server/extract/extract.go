// Package extract parses free-form user input into canonical numeric
// track or playlist identifiers. Pure string parsing, no network calls.
package extract

import (
	"regexp"
	"strings"
)

var (
	idParamMatcher  = regexp.MustCompile(`[?&]id=(\d+)`)
	playlistMatcher = regexp.MustCompile(`playlist[/=](\d+)`)
	songMatcher     = regexp.MustCompile(`song[/=](\d+)`)
	digitsMatcher   = regexp.MustCompile(`^\d+$`)
)

// PlaylistID extracts a playlist identifier from a share link or raw ID.
// Matching is ordered: an id query parameter wins over a playlist path
// segment, and a purely numeric input is returned verbatim.
func PlaylistID(input string) (string, bool) {
	return extract(input, playlistMatcher)
}

// SongID extracts a single-track identifier from a share link or raw ID.
func SongID(input string) (string, bool) {
	return extract(input, songMatcher)
}

func extract(input string, pathMatcher *regexp.Regexp) (string, bool) {
	input = strings.TrimSpace(input)
	if m := idParamMatcher.FindStringSubmatch(input); m != nil {
		return m[1], true
	}
	if m := pathMatcher.FindStringSubmatch(input); m != nil {
		return m[1], true
	}
	if digitsMatcher.MatchString(input) {
		return input, true
	}
	return "", false
}
