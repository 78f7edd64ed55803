package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

type Logger struct {
	debugEnabled bool
	pretty       bool
	mu           sync.RWMutex
	out          io.Writer
	fileSink     *fileSink
}

type Event struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Fields  map[string]any
}

func New(debug bool) *Logger {
	return &Logger{
		debugEnabled: debug,
		pretty:       shouldPrettyPrint(),
		out:          os.Stderr,
	}
}

// NewWriter logs plain lines to w; used by tests and non-terminal callers.
func NewWriter(w io.Writer, debug bool) *Logger {
	logger := New(debug)
	logger.pretty = false
	logger.out = w
	return logger
}

func Field(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(msg string, fields ...slog.Attr) {
	if l == nil {
		return
	}
	// Debug events always reach the file sink; the terminal only sees them with --debug.
	l.log(slog.LevelDebug, msg, fields, l.debugEnabled)
}

func (l *Logger) Info(msg string, fields ...slog.Attr) {
	if l == nil {
		return
	}
	l.log(slog.LevelInfo, msg, fields, true)
}

func (l *Logger) Warn(msg string, fields ...slog.Attr) {
	if l == nil {
		return
	}
	l.log(slog.LevelWarn, msg, fields, true)
}

func (l *Logger) Error(msg string, fields ...slog.Attr) {
	if l == nil {
		return
	}
	l.log(slog.LevelError, msg, fields, true)
}

func (l *Logger) EnableFilePersistence(dir string, maxBytes int64) error {
	if l == nil {
		return nil
	}
	sink, err := newFileSink(dir, maxBytes)
	if err != nil {
		return err
	}
	l.mu.Lock()
	old := l.fileSink
	l.fileSink = sink
	l.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return nil
}

func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	sink := l.fileSink
	l.fileSink = nil
	l.mu.Unlock()
	if sink == nil {
		return nil
	}
	return sink.Close()
}

func (l *Logger) log(level slog.Level, msg string, attrs []slog.Attr, toTerminal bool) {
	event := Event{
		Time:    time.Now(),
		Level:   level,
		Message: msg,
		Fields:  attrsToMap(attrs),
	}
	l.mu.RLock()
	sink := l.fileSink
	out := l.out
	l.mu.RUnlock()
	if sink != nil {
		_ = sink.WriteEvent(event)
	}
	if toTerminal && out != nil {
		l.emit(out, event)
	}
}

func (l *Logger) emit(out io.Writer, event Event) {
	if l.pretty {
		_, _ = io.WriteString(out, FormatEventANSI(event))
		return
	}
	_, _ = io.WriteString(out, FormatEventLine(event))
}

func resolveAttr(attr slog.Attr) (string, any) {
	if attr.Key == "" {
		return "", nil
	}
	value := attr.Value.Resolve()
	if value.Kind() != slog.KindGroup {
		return attr.Key, value.Any()
	}
	inner := map[string]any{}
	for _, groupAttr := range value.Group() {
		if key, val := resolveAttr(groupAttr); key != "" {
			inner[key] = val
		}
	}
	return attr.Key, inner
}

func attrsToMap(attrs []slog.Attr) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	values := map[string]any{}
	for _, attr := range attrs {
		if key, value := resolveAttr(attr); key != "" {
			values[key] = value
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}
