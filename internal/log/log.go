// Package log is the process-wide structured logger. Attributes attached to a
// context with With are added to every record logged with that context.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	levelVar = new(slog.LevelVar)
	loggerMu sync.RWMutex
	logger   = slog.New(newHandler(os.Stdout, "text"))
)

type attrsKey struct{}

// With returns a context whose log records carry args as attributes, on top
// of any attributes ctx already carries.
func With(ctx context.Context, args ...any) context.Context {
	ctx = withContext(ctx)
	if len(args) == 0 {
		return ctx
	}
	prev, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	rec := slog.NewRecord(time.Time{}, 0, "", 0)
	rec.Add(args...)
	attrs := make([]slog.Attr, 0, len(prev)+rec.NumAttrs())
	attrs = append(attrs, prev...)
	rec.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	return context.WithValue(ctx, attrsKey{}, attrs)
}

// contextHandler copies the attributes stored by With into each record.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if attrs, ok := ctx.Value(attrsKey{}).([]slog.Attr); ok {
		rec.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, rec)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}

func newHandler(w io.Writer, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: levelVar, ReplaceAttr: renameKeys}
	if format == "json" {
		return contextHandler{slog.NewJSONHandler(w, opts)}
	}
	return contextHandler{slog.NewTextHandler(w, opts)}
}

// renameKeys writes ts/level/msg with UTC timestamps and lower-case levels.
func renameKeys(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return attr
	}
	switch attr.Key {
	case slog.TimeKey:
		attr.Key = "ts"
		if attr.Value.Kind() == slog.KindTime {
			attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339Nano))
		}
	case slog.LevelKey:
		attr.Key = "level"
		attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
	case slog.MessageKey:
		attr.Key = "msg"
	}
	return attr
}

// SetFormat switches stdout output between logfmt ("text") and "json".
func SetFormat(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text", "logfmt":
		setLogger(slog.New(newHandler(os.Stdout, "text")))
	case "json":
		setLogger(slog.New(newHandler(os.Stdout, "json")))
	default:
		return fmt.Errorf("unknown log format: %s", format)
	}
	return nil
}

// SetLevel sets the minimum level: debug, info, warn or error.
func SetLevel(level string) error {
	var l slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		l = slog.LevelInfo
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		return fmt.Errorf("unknown log level: %s", level)
	}
	levelVar.Set(l)
	return nil
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

func setLogger(l *slog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

// ReplaceLogger installs l as the process logger. Records still pick up the
// attributes stored by With.
func ReplaceLogger(l *slog.Logger) {
	if l == nil {
		panic("log: nil logger provided")
	}
	if _, ok := l.Handler().(contextHandler); !ok {
		l = slog.New(contextHandler{l.Handler()})
	}
	setLogger(l)
}

func Info(ctx context.Context, msg string, args ...any) {
	Logger().InfoContext(withContext(ctx), msg, args...)
}

func Debug(ctx context.Context, msg string, args ...any) {
	Logger().DebugContext(withContext(ctx), msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	Logger().WarnContext(withContext(ctx), msg, args...)
}

func Error(ctx context.Context, msg string, args ...any) {
	Logger().ErrorContext(withContext(ctx), msg, args...)
}

func withContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
