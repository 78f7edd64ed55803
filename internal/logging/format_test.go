package logging

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestFormatEventLine(t *testing.T) {
	event := Event{
		Time:    time.Date(2026, 10, 19, 9, 30, 5, 0, time.Local),
		Level:   slog.LevelWarn,
		Message: "palette reload failed",
		Fields: map[string]any{
			"error": errors.New("bad color \"blue\""),
			"path":  "palette.toml",
			"sizes": []int{16, 32},
		},
	}
	got := FormatEventLine(event)
	want := `09:30:05 [WARN] palette reload failed path=palette.toml sizes=16,32 error="bad color \"blue\""` + "\n"
	if got != want {
		t.Fatalf("FormatEventLine() = %q, want %q", got, want)
	}
}

func TestFormatEventLine_NoFields(t *testing.T) {
	event := Event{Time: time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local), Level: slog.LevelInfo, Message: "all icons created"}
	if got := FormatEventLine(event); got != "03:04:05 [INFO] all icons created\n" {
		t.Fatalf("FormatEventLine() = %q", got)
	}
}

func TestOrderedFieldKeys_ErrorLast(t *testing.T) {
	keys := orderedFieldKeys(map[string]any{"error": "x", "size": 16, "attempt": 2})
	if strings.Join(keys, ",") != "attempt,size,error" {
		t.Fatalf("orderedFieldKeys() = %v", keys)
	}
}

func TestLoggerWritesPlainLines(t *testing.T) {
	var quiet strings.Builder
	logger := NewWriter(&quiet, false)
	logger.Info("created icon", Field("path", "icons/icon16.png"))
	logger.Debug("hidden")

	text := quiet.String()
	if !strings.Contains(text, "[INFO] created icon path=icons/icon16.png") {
		t.Fatalf("missing info line in %q", text)
	}
	if strings.Contains(text, "hidden") {
		t.Fatalf("debug line printed while debug disabled: %q", text)
	}

	var verbose strings.Builder
	NewWriter(&verbose, true).Debug("shown")
	if !strings.Contains(verbose.String(), "[DEBUG] shown") {
		t.Fatalf("missing debug line in %q", verbose.String())
	}
}

func TestFormatEventANSI_ContainsMessageAndFields(t *testing.T) {
	event := Event{Time: time.Now(), Level: slog.LevelInfo, Message: "created icon", Fields: map[string]any{"size": 48}}
	got := FormatEventANSI(event)
	if !strings.Contains(got, "created icon") || !strings.Contains(got, "48") || !strings.HasSuffix(got, "\n") {
		t.Fatalf("FormatEventANSI() = %q", got)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.Info("ignored")
	logger.Debug("ignored")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}
