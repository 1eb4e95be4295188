// Package logging configures the shared logrus logger.
//
// The TUI owns stdout, so log output goes to a file under the data directory.
// Components obtain scoped entries via Component.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
)

var logger = log.New()

func init() {
	logger.Out = io.Discard
	logger.Formatter = &log.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	}
	logger.SetLevel(log.InfoLevel)
}

// Setup points the logger at the application log file. Failures fall back to
// discarding output rather than corrupting the terminal.
func Setup(path string) {
	if lvl, err := log.ParseLevel(os.Getenv("TUBER_LOG_LEVEL")); err == nil {
		logger.SetLevel(lvl)
	}

	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	logger.Out = f
}

// Component returns a logger entry tagged with the originating component.
func Component(name string) *log.Entry {
	return logger.WithField("component", name)
}
