package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	stdlog "log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologAdapter_Fields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := NewLogger(&buf, "engine")

	l.Info("computed",
		String("op", "mul"),
		Int("digits", 42),
		Bool("cached", false),
		Float64("seconds", 0.5),
	)

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	want := map[string]any{
		"level":     "info",
		"message":   "computed",
		"component": "engine",
		"op":        "mul",
		"digits":    float64(42),
		"cached":    false,
		"seconds":   0.5,
	}
	for k, v := range want {
		if event[k] != v {
			t.Errorf("event[%q] = %v, want %v", k, event[k], v)
		}
	}
	if _, ok := event["time"]; !ok {
		t.Error("event should carry a timestamp")
	}
}

func TestZerologAdapter_Error(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := NewZerologAdapter(zerolog.New(&buf))
	l.Error("failed", errors.New("division by zero"), String("expr", "1 / 0"))

	out := buf.String()
	for _, s := range []string{`"level":"error"`, `"error":"division by zero"`, `"expr":"1 / 0"`} {
		if !strings.Contains(out, s) {
			t.Errorf("output %q missing %s", out, s)
		}
	}
}

func TestZerologAdapter_PrintCompat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := NewZerologAdapter(zerolog.New(&buf))
	l.Printf("listening on %s", ":8080")
	l.Println("GET", "/health")

	out := buf.String()
	if !strings.Contains(out, `"message":"listening on :8080"`) {
		t.Errorf("Printf output = %q", out)
	}
	if !strings.Contains(out, `"message":"GET /health"`) {
		t.Errorf("Println output = %q", out)
	}
}

func TestConsoleLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewConsoleLogger(&buf, "repl", true).Info("ready", String("engine", "digits"))
	out := buf.String()
	if !strings.Contains(out, "ready") || !strings.Contains(out, "engine=digits") {
		t.Errorf("console output = %q", out)
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := NewStdLoggerAdapter(stdlog.New(&buf, "", 0))

	l.Info("start", String("port", "8080"))
	l.Error("stop", errors.New("boom"))
	l.Debug("tick")

	want := "[INFO] start port=8080\n[ERROR] stop: boom\n[DEBUG] tick\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{" WARN ", zerolog.WarnLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"verbose", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
