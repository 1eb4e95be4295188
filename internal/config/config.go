package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything tuber needs to reach a VidTube deployment.
type Config struct {
	APIURL    string // REST API base, e.g. http://localhost:8000/api/v1
	SocketURL string // socket server base, e.g. http://localhost:8000
	ProxyBind string // bind address for the embedded media proxy
	MediaHost string // the single host the media proxy will fetch from
	DataDir   string // session, engagement cache, and log files live here
}

const (
	defaultConfigPath = "~/.config/tuber/config.toml"
	defaultDataDir    = "~/.local/share/tuber"
	defaultAPIURL     = "http://localhost:8000/api/v1"
	defaultSocketURL  = "http://localhost:8000"
	defaultProxyBind  = "127.0.0.1:8090"
	defaultMediaHost  = "res.cloudinary.com"
)

// Load locates and parses the tuber config, falling back to defaults when
// missing. A .env file in the working directory and TUBER_* environment
// variables override file values.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:    defaultAPIURL,
		SocketURL: defaultSocketURL,
		ProxyBind: defaultProxyBind,
		MediaHost: defaultMediaHost,
		DataDir:   defaultDataDir,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
	} else {
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}

		var raw struct {
			APIURL    string `toml:"api_url"`
			SocketURL string `toml:"socket_url"`
			ProxyBind string `toml:"proxy_bind"`
			MediaHost string `toml:"media_host"`
			DataDir   string `toml:"data_dir"`
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		applyIfSet(&cfg.APIURL, raw.APIURL)
		applyIfSet(&cfg.SocketURL, raw.SocketURL)
		applyIfSet(&cfg.ProxyBind, raw.ProxyBind)
		applyIfSet(&cfg.MediaHost, raw.MediaHost)
		applyIfSet(&cfg.DataDir, raw.DataDir)
	}

	// Environment wins over the file so deployments can be switched without
	// editing the config. A missing .env is fine.
	_ = godotenv.Load()
	applyIfSet(&cfg.APIURL, os.Getenv("TUBER_API_URL"))
	applyIfSet(&cfg.SocketURL, os.Getenv("TUBER_SOCKET_URL"))
	applyIfSet(&cfg.ProxyBind, os.Getenv("TUBER_PROXY_BIND"))
	applyIfSet(&cfg.MediaHost, os.Getenv("TUBER_MEDIA_HOST"))

	cfg.DataDir = mustExpand(cfg.DataDir)
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.SocketURL = strings.TrimRight(cfg.SocketURL, "/")

	return cfg, nil
}

// SessionPath returns where the persisted session document lives.
func (c Config) SessionPath() string {
	return filepath.Join(c.DataDir, "session.json")
}

// EngagementPath returns where the local engagement cache lives.
func (c Config) EngagementPath() string {
	return filepath.Join(c.DataDir, "engagement.json")
}

// LogPath returns the application log file path.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "tuber.log")
}

func applyIfSet(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
