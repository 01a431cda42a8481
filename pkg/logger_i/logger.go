package logger_i

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/akolanti/DocSummaryAPI/internal/config"
)

// Logger resolves slog.Default on every call so loggers created before Init
// still follow the configured handler.
type Logger struct {
	attrs []any
}

// Init installs the process wide slog handler. JSON output is meant for
// production, text output for local runs.
func Init(level string, json bool) {
	InitWithWriter(os.Stdout, level, json)
}

func InitWithWriter(w io.Writer, level string, json bool) {
	options := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, options)
	} else {
		handler = slog.NewTextHandler(w, options)
	}
	slog.SetDefault(slog.New(handler))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	default:
		return config.LOG_LEVEL_PROD
	}
}

func NewLogger(section string) *Logger {
	return &Logger{
		attrs: []any{"component", section},
	}
}

// FromContext returns l with the request trace id attached, if there is one.
func (l *Logger) FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	if trace, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok && trace != "" {
		return l.With("traceId", trace)
	}
	return l
}

func (l *Logger) Info(msg string, args ...any) {
	l.current().Info(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.current().Error(msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.current().Warn(msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.current().Debug(msg, args...)
}

func (l *Logger) With(args ...any) *Logger {
	attrs := make([]any, 0, len(l.attrs)+len(args))
	attrs = append(attrs, l.attrs...)
	return &Logger{
		attrs: append(attrs, args...),
	}
}

func (l *Logger) current() *slog.Logger {
	return slog.Default().With(l.attrs...)
}
