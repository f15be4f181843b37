package paged

import (
	"log/slog"

	"github.com/gogpu/paged/internal/logging"
)

// SetLogger configures the logger for paged and all its sub-packages.
// By default, paged produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by paged:
//   - [slog.LevelDebug]: pagination and page lifecycle
//   - [slog.LevelInfo]: render start and finish, tagged with a render id
//   - [slog.LevelWarn]: skipped resources and font fallbacks
//
// Example:
//
//	paged.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by paged.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
