package blit

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// encodePNG renders an image to PNG bytes for decode tests.
func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// testPNG builds a w x h PNG filled with the given color.
func testPNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return encodePNG(t, img)
}

func TestDecodeSurface(t *testing.T) {
	data := testPNG(t, 3, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	s, err := DecodeSurface(data)
	if err != nil {
		t.Fatalf("DecodeSurface: %v", err)
	}
	if s.W != 3 || s.H != 2 {
		t.Fatalf("size = %dx%d, want 3x2", s.W, s.H)
	}
	if !s.HasAlpha {
		t.Error("HasAlpha = false for PNG")
	}
	if got := s.At(1, 1); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("At(1,1) = %+v", got)
	}
}

func TestDecodeSurfaceEmpty(t *testing.T) {
	if _, err := DecodeSurface(nil); err == nil {
		t.Error("DecodeSurface(nil) = nil error")
	}
}

func TestDecodeSurfaceGarbage(t *testing.T) {
	if _, err := DecodeSurface([]byte("not an image")); err == nil {
		t.Error("DecodeSurface(garbage) = nil error")
	}
}

func TestVFlip(t *testing.T) {
	s := NewSurface(2, 3)
	s.SetPixel(0, 0, color.NRGBA{R: 1, A: 255})
	s.SetPixel(1, 2, color.NRGBA{B: 1, A: 255})

	s.VFlip()

	if got := s.At(0, 2); got.R != 1 {
		t.Errorf("top-left did not move to bottom-left: %+v", got)
	}
	if got := s.At(1, 0); got.B != 1 {
		t.Errorf("bottom-right did not move to top-right: %+v", got)
	}
	if got := s.At(0, 0); got != (color.NRGBA{}) {
		t.Errorf("empty pixel polluted: %+v", got)
	}
}

func TestPadPOT(t *testing.T) {
	s := NewSurface(5, 3)
	s.SetPixel(4, 2, color.NRGBA{R: 255, A: 255})

	pix, pw, ph := s.padPOT()
	if pw != 8 || ph != 4 {
		t.Fatalf("padded size = %dx%d, want 8x4", pw, ph)
	}
	if len(pix) != pw*ph*4 {
		t.Fatalf("len(pix) = %d, want %d", len(pix), pw*ph*4)
	}

	// The marked pixel keeps its coordinates in the padded buffer.
	i := (2*pw + 4) * 4
	if pix[i] != 255 || pix[i+3] != 255 {
		t.Error("pixel lost during padding")
	}
	// Padding is transparent black.
	j := (2*pw + 5) * 4
	if pix[j] != 0 || pix[j+3] != 0 {
		t.Error("padding is not transparent")
	}
}

func TestPadPOTAlreadyPOT(t *testing.T) {
	s := NewSurface(16, 8)
	pix, pw, ph := s.padPOT()
	if pw != 16 || ph != 8 {
		t.Fatalf("padded size = %dx%d, want 16x8", pw, ph)
	}
	if &pix[0] != &s.Pix[0] {
		t.Error("POT surface was copied, want the original buffer")
	}
}

func TestIsTransparentAlpha(t *testing.T) {
	s := NewSurface(2, 1)
	s.SetPixel(0, 0, color.NRGBA{R: 255, A: 255})

	if s.isTransparent(0, 0) {
		t.Error("opaque pixel reads as transparent")
	}
	if !s.isTransparent(1, 0) {
		t.Error("zero-alpha pixel reads as opaque")
	}
}

func TestIsTransparentColorKey(t *testing.T) {
	s := NewSurface(2, 1)
	s.SetPixel(0, 0, color.NRGBA{R: 255, B: 255, A: 255})
	s.SetPixel(1, 0, color.NRGBA{G: 255, A: 255})
	s.SetColorKey(color.NRGBA{R: 255, B: 255, A: 255})

	if !s.isTransparent(0, 0) {
		t.Error("keyed pixel reads as opaque")
	}
	if s.isTransparent(1, 0) {
		t.Error("non-keyed pixel reads as transparent")
	}
}

func TestIsTransparentNoAlphaNoKey(t *testing.T) {
	s := NewSurface(1, 1)
	s.HasAlpha = false
	if s.isTransparent(0, 0) {
		t.Error("opaque-format pixel reads as transparent")
	}
}
