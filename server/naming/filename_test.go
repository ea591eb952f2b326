package naming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		track   string
		artists string
		ext     string
		want    string
	}{
		{
			name: "no metadata falls back to song id",
			id:   "1", ext: "mp3",
			want: "song_1.mp3",
		},
		{
			name: "name without artists gets placeholder",
			id:   "1", track: "A", ext: "mp3",
			want: "A-未知作者.mp3",
		},
		{
			name: "name and artists joined with dash",
			id:   "2", track: "海阔天空", artists: "Beyond", ext: "flac",
			want: "海阔天空-Beyond.flac",
		},
		{
			name: "illegal characters stripped",
			id:   "3", track: `a<b>c:d"e/f\g|h?i*j`, artists: "x", ext: "mp3",
			want: "abcdefghij-x.mp3",
		},
		{
			name: "sanitized to empty falls back to song id",
			id:   "4", track: `???`, artists: "", ext: "mp3",
			want: "song_4.mp3",
		},
		{
			name: "leading dots stripped from extension",
			id:   "5", track: "t", artists: "a", ext: "..mp3",
			want: "t-a.mp3",
		},
		{
			name: "no extension appended when empty",
			id:   "6", track: "t", artists: "a",
			want: "t-a",
		},
		{
			name: "whitespace-only metadata treated as absent",
			id:   "7", track: "  ", artists: "  ", ext: "mp3",
			want: "song_7.mp3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.id, tt.track, tt.artists, tt.ext))
		})
	}
}

func TestBuildNeverEmitsIllegalCharacters(t *testing.T) {
	got := Build("9", "na\x00me\x1f", "ar/ti\\sts", "mp3")
	for _, c := range `<>:"/\|?*` {
		assert.NotContains(t, got, string(c))
	}
	assert.NotContains(t, got, "\x00")
	assert.NotContains(t, got, "\x1f")
}

func TestContentDisposition(t *testing.T) {
	got := ContentDisposition("海阔天空-Beyond.mp3")

	assert.True(t, strings.HasPrefix(got, `attachment; filename="`))
	assert.Contains(t, got, `filename="____-Beyond.mp3"`, "non-ASCII runes replaced in fallback")
	assert.Contains(t, got, "filename*=UTF-8''%E6%B5%B7%E9%98%94%E5%A4%A9%E7%A9%BA-Beyond.mp3")
}

func TestContentDispositionASCIIOnly(t *testing.T) {
	got := ContentDisposition("plain.mp3")
	assert.Equal(t, `attachment; filename="plain.mp3"; filename*=UTF-8''plain.mp3`, got)
}

func TestGuessExt(t *testing.T) {
	tests := []struct {
		quality     string
		contentType string
		want        string
	}{
		{"flac", "", "flac"},
		{"FLAC", "audio/mpeg", "flac"},
		{"320", "audio/flac", "flac"},
		{"320", "audio/mpeg", "mp3"},
		{"128", "audio/mp3", "mp3"},
		{"320", "audio/aac", "m4a"},
		{"320", "application/ogg", "ogg"},
		{"320", "", "mp3"},
		{"", "application/octet-stream", "mp3"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GuessExt(tt.quality, tt.contentType), "quality=%q ct=%q", tt.quality, tt.contentType)
	}
}

func TestNormalizeQQQuality(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"128", "128"},
		{"320", "320"},
		{"flac", "flac"},
		{"FLAC", "flac"},
		{" 320 ", "320"},
		{"999", "128"},
		{"", "128"},
		{"lossless", "128"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeQQQuality(tt.in), "input %q", tt.in)
	}
}
