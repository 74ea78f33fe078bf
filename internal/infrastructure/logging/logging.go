package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrescamacho/prun-pricer/internal/application/common"
	"github.com/andrescamacho/prun-pricer/internal/infrastructure/config"
)

// New builds the process logger from configuration. The returned closer
// releases the log file when output is "file" and is a no-op otherwise.
func New(cfg config.LoggingConfig) (*slog.Logger, io.Closer, error) {
	var (
		w      io.Writer
		closer io.Closer = nopCloser{}
	)

	switch cfg.Output {
	case "stdout":
		w = os.Stdout
	case "", "stderr":
		w = os.Stderr
	case "file":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	default:
		return nil, nil, fmt.Errorf("unsupported log output: %s", cfg.Output)
	}

	return slog.New(NewHandler(w, cfg)), closer, nil
}

// NewHandler returns a json or text handler writing to w
func NewHandler(w io.Writer, cfg config.LoggingConfig) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.IncludeCaller,
	}
	if cfg.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel maps a configured level name onto slog levels; unknown names mean info
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

// Adapter exposes a slog logger through the application's Logger interface
type Adapter struct {
	logger *slog.Logger
}

// NewAdapter wraps a slog logger
func NewAdapter(logger *slog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

var _ common.Logger = (*Adapter)(nil)

// Log writes one record; metadata keys become attributes
func (a *Adapter) Log(level, message string, metadata map[string]interface{}) {
	attrs := make([]any, 0, len(metadata)*2)
	for k, v := range metadata {
		attrs = append(attrs, k, v)
	}
	a.logger.Log(context.Background(), ParseLevel(level), message, attrs...)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
