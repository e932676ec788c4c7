package blit

import (
	"bytes"
	"context"
	"image/color"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultIsSilent(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger() = nil")
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	ctx, _ := newTestContext(t, 800, 600, map[string][]byte{
		"a.png": testPNG(t, 2, 2, color.NRGBA{R: 255, A: 255}),
	})
	tex, err := ctx.Acquire("a.png", 0)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	ctx.Release(tex)

	if !strings.Contains(buf.String(), "texture loaded") {
		t.Error("load was not logged")
	}
	if !strings.Contains(buf.String(), "texture freed") {
		t.Error("free was not logged")
	}

	buf.Reset()
	SetLogger(nil)
	ctx.Release(nil)
	if buf.Len() != 0 {
		t.Error("SetLogger(nil) did not silence logging")
	}
}

func TestCloseLogsLeaks(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	ctx, _ := newTestContext(t, 800, 600, map[string][]byte{
		"leak.png": testPNG(t, 2, 2, color.NRGBA{R: 255, A: 255}),
	})
	if _, err := ctx.Acquire("leak.png", 0); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := ctx.Close(); err == nil {
		t.Fatal("Close with leaks returned nil")
	}

	out := buf.String()
	if !strings.Contains(out, "leak.png") || !strings.Contains(out, "leaked") {
		t.Errorf("leak report missing identity: %q", out)
	}
}
