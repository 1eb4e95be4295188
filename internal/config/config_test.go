package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TUBER_API_URL", "")
	t.Setenv("TUBER_SOCKET_URL", "")
	t.Setenv("TUBER_PROXY_BIND", "")
	t.Setenv("TUBER_MEDIA_HOST", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	if cfg.MediaHost != defaultMediaHost {
		t.Fatalf("MediaHost = %q, want %q", cfg.MediaHost, defaultMediaHost)
	}
	if !strings.HasPrefix(cfg.DataDir, home) {
		t.Fatalf("DataDir = %q, want under %q", cfg.DataDir, home)
	}
}

func TestLoad_ReadsFileAndTrimsTrailingSlash(t *testing.T) {
	tmp := t.TempDir()
	cfgFile := filepath.Join(tmp, "config.toml")
	body := "api_url = \"http://api.example.net/api/v1/\"\nmedia_host = \"cdn.example.net\"\n"
	if err := os.WriteFile(cfgFile, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("TUBER_API_URL", "")
	t.Setenv("TUBER_MEDIA_HOST", "")

	cfg, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://api.example.net/api/v1" {
		t.Fatalf("APIURL = %q, want trailing slash trimmed", cfg.APIURL)
	}
	if cfg.MediaHost != "cdn.example.net" {
		t.Fatalf("MediaHost = %q, want cdn.example.net", cfg.MediaHost)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	tmp := t.TempDir()
	cfgFile := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(cfgFile, []byte("api_url = \"http://from-file\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("TUBER_API_URL", "http://from-env")

	cfg, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://from-env" {
		t.Fatalf("APIURL = %q, want env override", cfg.APIURL)
	}
}

func TestLoad_InvalidTOMLIsAnError(t *testing.T) {
	tmp := t.TempDir()
	cfgFile := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(cfgFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(cfgFile); err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
}

func TestConfig_DerivedPaths(t *testing.T) {
	cfg := Config{DataDir: "/data/tuber"}
	if got := cfg.SessionPath(); got != filepath.Join("/data/tuber", "session.json") {
		t.Fatalf("SessionPath = %q", got)
	}
	if got := cfg.EngagementPath(); got != filepath.Join("/data/tuber", "engagement.json") {
		t.Fatalf("EngagementPath = %q", got)
	}
	if got := cfg.LogPath(); got != filepath.Join("/data/tuber", "tuber.log") {
		t.Fatalf("LogPath = %q", got)
	}
}
