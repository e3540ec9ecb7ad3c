package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_KeyValueFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.With("component", "kvstore").Warn("store degraded", "profile_id", int64(205), "error", errors.New("boom"), "dangling")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "kvstore" {
		t.Fatalf("missing component field: %v", fields)
	}
	if fields["profile_id"] != int64(205) {
		t.Fatalf("unexpected profile_id: %v", fields["profile_id"])
	}
	if fields["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", fields["error"])
	}
	if _, ok := fields["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
}

func TestLogger_ContextAddsTraceIDs(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "profile listed")
	logger.DebugContext(ctx, "filtered out by level")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["trace_id"] != traceID.String() {
		t.Fatalf("unexpected trace_id: %v", fields["trace_id"])
	}
	if fields["span_id"] != spanID.String() {
		t.Fatalf("unexpected span_id: %v", fields["span_id"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{in: "debug", want: LevelDebug},
		{in: " WARN ", want: LevelWarn},
		{in: "warning", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "", want: LevelInfo},
		{in: "verbose", want: LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Fatalf("ParseLevel(%q)=%v want=%v", tt.in, got, tt.want)
		}
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("must not panic")
	logger.With("k", "v").Warn("must not panic either")
}

func TestNew_JSONReportsCallerOfLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Format: ParseFormat("json"), Level: LevelInfo, Output: &buf})

	logger.Info("profile listed", "count", 8)
	logger.Debug("dropped")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := sonic.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "profile listed" || entry["level"] != "INFO" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["count"] != float64(8) {
		t.Fatalf("unexpected count: %v", entry["count"])
	}
	if caller, _ := entry["caller"].(string); !strings.Contains(caller, "logger_test.go") {
		t.Fatalf("expected caller in test file, got %q", caller)
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat(" Console ") != FormatConsole {
		t.Fatalf("expected console format")
	}
	if ParseFormat("") != FormatJSON || ParseFormat("text") != FormatJSON {
		t.Fatalf("expected json default")
	}
}

func TestLogger_PassesZapFieldsThrough(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	logger.Info("seeded", zap.Int("profiles", 8), "backend", "memory", 42, "unnamed")

	fields := logs.All()[0].ContextMap()
	if fields["profiles"] != int64(8) || fields["backend"] != "memory" || fields["arg"] != "unnamed" {
		t.Fatalf("unexpected fields: %v", fields)
	}
}
