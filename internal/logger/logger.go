// Package logger configures slog for the game. The TUI owns the terminal,
// so logs go to a file (or are discarded), never to stderr.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// NewSessionID creates an identifier that tags every log line of one game
// session.
func NewSessionID() string {
	return uuid.NewString()
}

// ParseLevel maps a config token onto a slog level, defaulting to Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup opens the log file (empty path discards logs) and installs a text
// handler as the slog default. The caller closes the returned file.
func Setup(level, path string) (*os.File, error) {
	var w io.Writer = io.Discard
	var f *os.File
	if path != "" {
		var err error
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		w = f
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	slog.SetDefault(slog.New(handler))
	return f, nil
}

// ForSession returns a logger carrying the session id attribute.
func ForSession(sessionID string) *slog.Logger {
	return slog.Default().With("session_id", sessionID)
}
