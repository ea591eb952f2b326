package state

import (
	"encoding/json"
	"os"
	"sync"

	"musicdl/server"
)

// Store holds the runtime resolution settings singleton, persisted to a flat
// JSON file. Reads vastly outnumber writes, so access is guarded by a
// read-mostly lock and every update replaces the whole struct.
type Store struct {
	mu     sync.RWMutex
	path   string
	cur    server.Settings
	logger server.Logger
}

// NewStore creates a store backed by the given file path, initialized with
// defaults. Call Load to pick up previously saved settings.
func NewStore(path string, logger server.Logger) *Store {
	return &Store{
		path:   path,
		cur:    server.DefaultSettings(),
		logger: logger,
	}
}

// Load reads saved settings from disk. A missing file leaves the defaults in
// place. Corrupt content is logged and the defaults retained; the server
// never refuses to start over a bad state file.
func (s *Store) Load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) && s.logger != nil {
			s.logger.Warn("read settings file", "path", s.path, "error", err)
		}
		return
	}

	var saved server.Settings
	if err := json.Unmarshal(data, &saved); err != nil {
		if s.logger != nil {
			s.logger.Warn("settings file corrupt, keeping defaults", "path", s.path, "error", err)
		}
		return
	}

	s.mu.Lock()
	s.cur = merge(s.cur, saved)
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("settings loaded", "api_source", s.cur.APISource, "music_source", s.cur.MusicSource, "music_quality", s.cur.MusicQuality)
	}
}

// Snapshot returns the current settings by value.
func (s *Store) Snapshot() server.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Update overlays the non-empty fields of in onto the current settings,
// persists the result wholesale and returns it. A write failure is logged
// but does not roll back the in-memory update.
func (s *Store) Update(in server.Settings) server.Settings {
	s.mu.Lock()
	s.cur = merge(s.cur, in)
	updated := s.cur
	s.mu.Unlock()

	if err := s.save(updated); err != nil && s.logger != nil {
		s.logger.Error("save settings", "path", s.path, "error", err)
	}
	return updated
}

func (s *Store) save(settings server.Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

func merge(base, in server.Settings) server.Settings {
	if in.APISource != "" {
		base.APISource = in.APISource
	}
	if in.MusicSource != "" {
		base.MusicSource = in.MusicSource
	}
	if in.MusicQuality != "" {
		base.MusicQuality = in.MusicQuality
	}
	return base
}
