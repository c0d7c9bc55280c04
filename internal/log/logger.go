package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu     sync.RWMutex
	logger *slog.Logger
)

// Config contains logging configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string
	// FilePath is the log file. The terminal belongs to the TUI, so logs never go to stdout.
	FilePath string
	// Writer overrides FilePath when set (tests).
	Writer io.Writer
}

// DefaultPath returns the log file location under the user cache dir.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "lookout", "lookout.log")
}

// Setup initializes the global logger and returns a cleanup function.
func Setup(cfg Config) (func(), error) {
	cleanup := func() {}
	out := cfg.Writer
	if out == nil {
		path := cfg.FilePath
		if path == "" {
			path = DefaultPath()
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		cleanup = func() { _ = f.Close() }
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	})

	mu.Lock()
	logger = slog.New(handler)
	slog.SetDefault(logger)
	mu.Unlock()

	return cleanup, nil
}

// ParseLevel converts a level name to slog.Level, defaulting to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Get returns the configured logger. Before Setup it discards everything.
func Get() *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}

// WithComponent returns a logger with the component field set.
func WithComponent(name string) *slog.Logger {
	return Get().With(slog.String("component", name))
}

// WithLauncher returns a logger with the launcher field set.
func WithLauncher(name string) *slog.Logger {
	return Get().With(slog.String("launcher", name))
}
