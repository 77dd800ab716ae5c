package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New(Config{Level: "debug", Format: "console"}, "test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level should be enabled")
	}

	l, err = New(Config{Level: "loud"}, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("unparsable level should fall back to info")
	}
	if !l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info level should be enabled")
	}
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	scoped := zap.New(core).With(zap.String("request_id", "abc"))

	ctx := WithLogger(context.Background(), scoped)
	FromContext(ctx, nil).Info("hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["request_id"] != "abc" {
		t.Errorf("request_id missing: %v", entries[0].ContextMap())
	}

	fallback := zap.NewExample()
	if FromContext(context.Background(), fallback) != fallback {
		t.Error("expected fallback logger")
	}
	if FromContext(context.Background(), nil) == nil {
		t.Error("expected no-op logger, got nil")
	}
}
