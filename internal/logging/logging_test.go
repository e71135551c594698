package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v want %v", in, got, want)
		}
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "json")

	logger.Info("dropped")
	logger.Warn("kept", "key", "value")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one log line got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "kept" || entry["key"] != "value" || entry["service"] != "vidinsight" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != slog.Default() {
		t.Fatal("expected default logger without context value")
	}

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx = WithLogger(ctx, logger)
	ctx = WithRequestID(ctx, "req-1")

	if FromContext(ctx) != logger {
		t.Fatal("expected stored logger")
	}
	if RequestIDFromContext(ctx) != "req-1" {
		t.Fatalf("unexpected request id %q", RequestIDFromContext(ctx))
	}
	if WithTraceID(ctx, "") != ctx {
		t.Fatal("empty trace id should not derive a new context")
	}
}

func TestStartSpanAddsTrace(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

	ctx, parent := StartSpan(ctx, "parent")
	traceID := TraceIDFromContext(ctx)
	if traceID == "" {
		t.Fatal("expected trace id to be assigned")
	}
	parentID := SpanIDFromContext(ctx)

	child, span := StartSpan(ctx, "child")
	if TraceIDFromContext(child) != traceID {
		t.Fatal("child span should share the trace id")
	}
	if SpanIDFromContext(child) == parentID {
		t.Fatal("child span should get its own id")
	}
	span.End()
	parent.End()

	if !strings.Contains(buf.String(), `"parent_span_id":"`+parentID+`"`) {
		t.Fatalf("expected child log to reference parent span: %s", buf.String())
	}
}
