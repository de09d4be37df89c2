package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"nope":    Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestJSONLogger_FieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "anime-tracker", Out: &buf})

	l.Debug("hidden", nil)
	l.With(map[string]any{"component": "db"}).Info("connected", map[string]any{"backend": "memory", "": "skip"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (debug filtered), got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry["message"] != "connected" || entry["level"] != "info" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["app"] != "anime-tracker" || entry["component"] != "db" || entry["backend"] != "memory" {
		t.Fatalf("missing fields: %v", entry)
	}
	if _, ok := entry[""]; ok {
		t.Fatalf("empty key should be dropped: %v", entry)
	}
}

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatText, Out: &buf})
	l.Warn("slow request", map[string]any{"ms": 1200})

	out := buf.String()
	if !strings.Contains(out, "slow request") || !strings.Contains(out, "ms=1200") {
		t.Fatalf("unexpected text output: %q", out)
	}
}
