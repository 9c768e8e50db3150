package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ashwch/hubnav/internal/safety"
)

// New returns a text logger writing to w. Debug records are only emitted when
// debug is set.
func New(w io.Writer, debug bool) *slog.Logger {
	if w == nil {
		return Discard()
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// Debug logs msg for component with key/value fields. String values are
// scrubbed of credentials. A nil logger or a failing handler is ignored.
func Debug(logger *slog.Logger, component, msg string, kv ...any) {
	emit(logger, slog.LevelDebug, component, msg, kv...)
}

// Error logs msg for component at error level with the same guarantees as Debug.
func Error(logger *slog.Logger, component, msg string, kv ...any) {
	emit(logger, slog.LevelError, component, msg, kv...)
}

func emit(logger *slog.Logger, level slog.Level, component, msg string, kv ...any) {
	if logger == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	ctx := context.Background()
	if !logger.Enabled(ctx, level) {
		return
	}
	attrs := make([]any, 0, len(kv)+2)
	attrs = append(attrs, slog.String("component", strings.ToLower(strings.TrimSpace(component))))
	attrs = append(attrs, scrubFields(kv...)...)
	logger.Log(ctx, level, msg, attrs...)
}

func scrubFields(kv ...any) []any {
	if len(kv)%2 != 0 {
		kv = append(kv, "(missing)")
	}
	out := make([]any, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		key := strings.TrimSpace(fmt.Sprint(kv[i]))
		switch val := kv[i+1].(type) {
		case string:
			out = append(out, slog.String(key, scrubString(val)))
		default:
			out = append(out, slog.Any(key, val))
		}
	}
	return out
}

func scrubString(val string) string {
	if strings.Contains(val, "://") {
		val = safety.RedactURL(val)
	}
	return safety.RedactText(val)
}
