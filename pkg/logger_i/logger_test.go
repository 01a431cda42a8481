package logger_i

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/akolanti/DocSummaryAPI/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", config.LOG_LEVEL_PROD},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_JSONCarriesComponentAndTrace(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	var buf bytes.Buffer
	InitWithWriter(&buf, "debug", true)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "trace-123")
	NewLogger("summary").FromContext(ctx).Info("classified", "label", "LegalDocument")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if entry["component"] != "summary" {
		t.Errorf("component got %v", entry["component"])
	}
	if entry["traceId"] != "trace-123" {
		t.Errorf("traceId got %v", entry["traceId"])
	}
	if entry["label"] != "LegalDocument" {
		t.Errorf("label got %v", entry["label"])
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	var buf bytes.Buffer
	InitWithWriter(&buf, "warn", false)

	l := NewLogger("test")
	l.Debug("hidden")
	l.Info("hidden too")
	l.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug/info lines should be filtered: %s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn line missing: %s", out)
	}
}

func TestLogger_CreatedBeforeInit(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	early := NewLogger("early").With("jobId", "42")

	var buf bytes.Buffer
	InitWithWriter(&buf, "info", true)
	early.Info("after init")

	if !strings.Contains(buf.String(), `"component":"early"`) || !strings.Contains(buf.String(), `"jobId":"42"`) {
		t.Errorf("early logger did not follow Init: %s", buf.String())
	}
}
