package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestFanout(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewWithWriters("info", &out, &errOut)

	logger.Debug("hidden")
	logger.Info("channel added", "channel_id", "42")
	logger.Error("save failed", "error", "boom")

	if strings.Contains(out.String(), "hidden") {
		t.Error("debug record should be filtered at info level")
	}
	if !strings.Contains(out.String(), "channel_id=42") {
		t.Errorf("text output missing attrs: %q", out.String())
	}
	if strings.Contains(errOut.String(), "channel added") {
		t.Error("info record leaked into the error stream")
	}
	if !strings.Contains(errOut.String(), `"msg":"save failed"`) {
		t.Errorf("json error output missing record: %q", errOut.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
