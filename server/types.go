package server

// Track is the minimal identifying and display data for one audio item.
// Name and Artists are used only for filename construction and may be empty.
type Track struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists string `json:"artists"`
}

// Settings is the active choice of upstream service and quality tier used
// for audio URL lookup. It is process-lifetime state, read on every
// resolution request and replaced wholesale on save.
type Settings struct {
	APISource    string `json:"api_source"`
	MusicSource  string `json:"music_source"`
	MusicQuality string `json:"music_quality"`
}

// DefaultSettings returns the settings used when no saved state exists.
func DefaultSettings() Settings {
	return Settings{
		APISource:    "original",
		MusicSource:  "netease",
		MusicQuality: "999",
	}
}

// ResolvedAudio pairs a playable URL with its download filename. It exists
// only for the duration of a single request and is never persisted.
type ResolvedAudio struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}
