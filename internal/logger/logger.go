package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/paise-ledger/internal/config"
)

// NewLogger creates and configures a new slog.Logger writing JSON to stderr.
// Stderr keeps structured log output out of the CLI's interactive stdout.
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
