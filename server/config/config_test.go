package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	conf, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if got := conf.GetInt("Port"); got != 5000 {
		t.Errorf("expected default port 5000, got %d", got)
	}
	if got := conf.GetString("PaugramEndpoint"); got == "" {
		t.Error("expected a default paugram endpoint")
	}
	if got := conf.GetInt("StreamTimeoutSec"); got != 20 {
		t.Errorf("expected stream timeout 20, got %d", got)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `Port: 8080
LogLevel: debug
QQAPIBase: http://localhost:9000/api
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	conf, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if got := conf.GetInt("Port"); got != 8080 {
		t.Errorf("expected port 8080, got %d", got)
	}
	if got := conf.GetString("LogLevel"); got != "debug" {
		t.Errorf("expected log level debug, got %s", got)
	}
	if got := conf.GetString("QQAPIBase"); got != "http://localhost:9000/api" {
		t.Errorf("unexpected QQAPIBase %s", got)
	}
	if got := conf.GetInt("LookupTimeoutSec"); got != 10 {
		t.Errorf("expected untouched default 10, got %d", got)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("Port: [unclosed"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}
