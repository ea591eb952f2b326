package extract

import "testing"

func TestPlaylistID(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantFound bool
	}{
		{
			name:      "share link with id param",
			input:     "https://music.163.com/#/playlist?id=12345",
			want:      "12345",
			wantFound: true,
		},
		{
			name:      "id param after other params",
			input:     "https://music.163.com/playlist?foo=bar&id=998877",
			want:      "998877",
			wantFound: true,
		},
		{
			name:      "id param wins over path segment",
			input:     "https://music.163.com/playlist/111?id=222",
			want:      "222",
			wantFound: true,
		},
		{
			name:      "playlist path segment",
			input:     "https://music.163.com/playlist/7654321",
			want:      "7654321",
			wantFound: true,
		},
		{
			name:      "playlist equals form",
			input:     "playlist=42",
			want:      "42",
			wantFound: true,
		},
		{
			name:      "bare numeric id",
			input:     "20393805",
			want:      "20393805",
			wantFound: true,
		},
		{
			name:      "numeric id with surrounding whitespace",
			input:     "  20393805\n",
			want:      "20393805",
			wantFound: true,
		},
		{
			name:      "id param inside surrounding text",
			input:     "分享歌单 https://example.com/x?id=31 快来听",
			want:      "31",
			wantFound: true,
		},
		{
			name:      "song path does not match playlist extraction",
			input:     "https://music.163.com/song/123",
			wantFound: false,
		},
		{
			name:      "garbage input",
			input:     "not a link at all",
			wantFound: false,
		},
		{
			name:      "empty input",
			input:     "",
			wantFound: false,
		},
		{
			name:      "digits mixed with letters",
			input:     "abc123",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := PlaylistID(tt.input)
			if found != tt.wantFound || got != tt.want {
				t.Errorf("PlaylistID(%q) = (%q, %v), want (%q, %v)", tt.input, got, found, tt.want, tt.wantFound)
			}
		})
	}
}

func TestSongID(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantFound bool
	}{
		{
			name:      "song share link with id param",
			input:     "https://music.163.com/#/song?id=186016",
			want:      "186016",
			wantFound: true,
		},
		{
			name:      "song path segment",
			input:     "https://music.163.com/song/186016",
			want:      "186016",
			wantFound: true,
		},
		{
			name:      "song equals form",
			input:     "song=186016",
			want:      "186016",
			wantFound: true,
		},
		{
			name:      "bare numeric id",
			input:     "186016",
			want:      "186016",
			wantFound: true,
		},
		{
			name:      "playlist path does not match song extraction",
			input:     "https://music.163.com/playlist/186016",
			wantFound: false,
		},
		{
			name:      "no match",
			input:     "hello world",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := SongID(tt.input)
			if found != tt.wantFound || got != tt.want {
				t.Errorf("SongID(%q) = (%q, %v), want (%q, %v)", tt.input, got, found, tt.want, tt.wantFound)
			}
		})
	}
}
