package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize json logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	if err := Init(WithFormat("console")); err != nil {
		t.Fatalf("failed to initialize console logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()
	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	if err := Init(WithFormat("xml")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLoggerNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	namedLogger := Named("test")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}
	namedLogger.Info(context.Background(), "test message", String("k", "v"))
}

func TestSetLevelString(t *testing.T) {
	defer func() { _ = SetLevelString("info") }()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"":        zapcore.InfoLevel,
		"WARNING": zapcore.WarnLevel,
		" error ": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		if err := SetLevelString(in); err != nil {
			t.Fatalf("SetLevelString(%q) returned %v", in, err)
		}
		if got := level.Level(); got != want {
			t.Errorf("SetLevelString(%q) set %v, want %v", in, got, want)
		}
	}
	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestFieldConversion(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := &zapLogger{z: zap.New(core)}

	l.Warn(context.Background(), "scored",
		String("user", "u1"),
		Int("items", 3),
		Int64("userID", 42),
		Float64("avg", 71.5),
		Bool("preview", true),
		Duration("took", time.Millisecond),
		Error(errors.New("boom")),
		Any("tags", []string{"a"}),
	)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["user"] != "u1" || ctx["items"] != int64(3) || ctx["userID"] != int64(42) {
		t.Errorf("unexpected fields: %v", ctx)
	}
	if ctx["avg"] != 71.5 || ctx["preview"] != true || ctx["error"] != "boom" {
		t.Errorf("unexpected fields: %v", ctx)
	}
	if ctx["took"] != time.Millisecond {
		t.Errorf("unexpected duration field: %v", ctx["took"])
	}
}

func TestNop(t *testing.T) {
	l := NewNop()
	l.Info(context.Background(), "discarded")
	if l.Named("x") == nil {
		t.Fatal("named nop logger is nil")
	}
}
