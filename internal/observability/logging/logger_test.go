package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerAttachesServiceAttribute(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSONLogger(&buf, "catalog-ingest", "info")

	logger.Info("price list committed", "products_created", 3)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log record: %v", err)
	}
	if record["service"] != "catalog-ingest" {
		t.Fatalf("service attribute = %v", record["service"])
	}
	if record["products_created"] != float64(3) {
		t.Fatalf("products_created = %v", record["products_created"])
	}
}

func TestLoggerFiltersBelowConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSONLogger(&buf, "catalog-ingest", "warn")

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info record not filtered: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"  WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
