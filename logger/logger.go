// Package logger sets up the process-wide structured logger and the
// per-run diagnostic log file.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup installs a text or JSON handler on stderr as the default slog logger.
// Extra attrs (key-value pairs, as in slog.Logger.With) are added to every record.
// stdout is left alone, so output can be piped.
func Setup(level string, format string, attrs ...any) {
	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler).With(attrs...))
}

// WithComponent returns the default logger with a component attribute.
func WithComponent(component string) *slog.Logger {
	return slog.Default().With("component", component)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Diagnostics creates (truncating) the file name and returns a logger that
// writes one line per record to it, without time or level, and the file,
// which the caller must close. An empty name gives a logger that discards
// everything, and a nil closer.
func Diagnostics(name string) (*slog.Logger, io.Closer, error) {
	if name == "" {
		return slog.New(slog.DiscardHandler), nil, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, nil, err
	}
	return NewDiagnostics(f), f, nil
}

// NewDiagnostics returns a diagnostic logger writing to w.
func NewDiagnostics(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && (a.Key == slog.TimeKey || a.Key == slog.LevelKey) {
				return slog.Attr{}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
