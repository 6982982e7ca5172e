package telemetry

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestWriteReservedKeysWin(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Warn("sink.failed", map[string]any{"sink": "webhook", "level": "spoofed"})

	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &payload); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if payload["level"] != "warn" {
		t.Fatalf("expected level warn, got %v", payload["level"])
	}
	if payload["msg"] != "sink.failed" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["sink"] != "webhook" {
		t.Fatalf("unexpected sink: %v", payload["sink"])
	}
	if payload["ts"] == "" {
		t.Fatalf("expected ts")
	}
}

func TestWriteUnmarshalableField(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Info("bad", map[string]any{"ch": make(chan int)})

	if !strings.Contains(buf.String(), "logger marshal failed") {
		t.Fatalf("expected fallback line, got %q", buf.String())
	}
}
