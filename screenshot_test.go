package blit

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestScreenshot(t *testing.T) {
	ctx, rec := newTestContext(t, 800, 600, nil)

	// 2x2 framebuffer, bottom row first: bottom is red, top is blue.
	rec.Framebuffer = []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	rec.FramebufferW = 2
	rec.FramebufferH = 2

	path := filepath.Join(t.TempDir(), "shot.png")
	if err := ctx.Screenshot(path); err != nil {
		t.Fatalf("Screenshot: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open screenshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode screenshot: %v", err)
	}

	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("size = %v, want 2x2", img.Bounds())
	}
	// Rows are flipped on the way out: image row 0 is the top.
	top := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
	bottom := color.NRGBAModel.Convert(img.At(0, 1)).(color.NRGBA)
	if top.B != 255 || top.R != 0 {
		t.Errorf("top pixel = %+v, want blue", top)
	}
	if bottom.R != 255 || bottom.B != 0 {
		t.Errorf("bottom pixel = %+v, want red", bottom)
	}
}

func TestScreenshotNoFramebuffer(t *testing.T) {
	ctx, _ := newTestContext(t, 800, 600, nil)
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := ctx.Screenshot(path); err == nil {
		t.Fatal("Screenshot with no framebuffer returned nil")
	}
}

func TestScreenshotBadPath(t *testing.T) {
	ctx, rec := newTestContext(t, 800, 600, nil)
	rec.Framebuffer = make([]byte, 4)
	rec.FramebufferW = 1
	rec.FramebufferH = 1

	err := ctx.Screenshot(filepath.Join(t.TempDir(), "no", "such", "dir", "x.png"))
	if err == nil {
		t.Fatal("Screenshot into a missing directory returned nil")
	}
}
