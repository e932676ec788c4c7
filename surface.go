package blit

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	// Register decoders for the formats game assets ship in beyond PNG.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Surface is a decoded image in host memory: tightly packed RGBA bytes,
// row-major, 4 bytes per pixel. It is the staging form between the asset
// decoder and the GPU upload.
//
// Textures are stored bottom-up to match the raw-space projection, so a
// freshly decoded surface must be flipped with VFlip before upload or
// transparency mapping.
type Surface struct {
	// W, H are the surface dimensions in pixels.
	W, H int

	// Pix holds W*H*4 bytes of RGBA data.
	Pix []byte

	// HasAlpha reports whether the source image carried an alpha channel.
	HasAlpha bool

	// key is the optional color key; pixels matching it are treated as
	// fully transparent for hit testing.
	key    color.NRGBA
	hasKey bool
}

// DecodeSurface decodes image bytes into a Surface, auto-detecting the
// format. PNG, JPEG, GIF, BMP, TIFF and WebP are supported.
func DecodeSurface(data []byte) (*Surface, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("surface: empty data")
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("surface: decode: %w", err)
	}
	return FromImage(img, format != "jpeg"), nil
}

// FromImage converts a decoded standard image into a Surface.
// hasAlpha tells the surface whether the source format carried an alpha
// channel; opaque formats never alpha-test.
func FromImage(img image.Image, hasAlpha bool) *Surface {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)

	s := &Surface{W: w, H: h, HasAlpha: hasAlpha, Pix: make([]byte, w*h*4)}
	// NRGBA stride may exceed w*4; repack tightly.
	for y := 0; y < h; y++ {
		copy(s.Pix[y*w*4:(y+1)*w*4], nrgba.Pix[y*nrgba.Stride:y*nrgba.Stride+w*4])
	}
	return s
}

// NewSurface creates a blank transparent surface of the given size.
func NewSurface(w, h int) *Surface {
	return &Surface{W: w, H: h, HasAlpha: true, Pix: make([]byte, w*h*4)}
}

// SetColorKey declares a color that reads as fully transparent for
// transparency mapping, regardless of the alpha channel.
func (s *Surface) SetColorKey(c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	s.key = n
	s.hasKey = true
}

// At returns the pixel at (x, y) in the surface's current row order.
func (s *Surface) At(x, y int) color.NRGBA {
	i := (y*s.W + x) * 4
	return color.NRGBA{R: s.Pix[i], G: s.Pix[i+1], B: s.Pix[i+2], A: s.Pix[i+3]}
}

// SetPixel sets the pixel at (x, y). Out-of-bounds coordinates are ignored.
func (s *Surface) SetPixel(x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= s.W || y >= s.H {
		return
	}
	i := (y*s.W + x) * 4
	s.Pix[i], s.Pix[i+1], s.Pix[i+2], s.Pix[i+3] = c.R, c.G, c.B, c.A
}

// isTransparent reports whether the pixel at (x, y) counts as transparent:
// equal to the color key when one is set, otherwise fully transparent
// alpha when the source had an alpha channel.
func (s *Surface) isTransparent(x, y int) bool {
	c := s.At(x, y)
	if s.hasKey {
		return c.R == s.key.R && c.G == s.key.G && c.B == s.key.B
	}
	if s.HasAlpha {
		return c.A == 0
	}
	return false
}

// VFlip flips the surface vertically in place. Decoded images are
// top-down; the renderer's texture convention is bottom-up.
func (s *Surface) VFlip() {
	stride := s.W * 4
	tmp := make([]byte, stride)
	for y := 0; y < s.H/2; y++ {
		hi := s.Pix[y*stride : (y+1)*stride]
		lo := s.Pix[(s.H-1-y)*stride : (s.H-y)*stride]
		copy(tmp, hi)
		copy(hi, lo)
		copy(lo, tmp)
	}
}

// padPOT returns the surface pixels copied into a buffer whose dimensions
// are the next powers of two, padded with transparent black. Legacy GPU
// sampling requires power-of-two texture storage.
func (s *Surface) padPOT() (pix []byte, pw, ph int) {
	pw = NextPowerOfTwo(s.W)
	ph = NextPowerOfTwo(s.H)
	if pw == s.W && ph == s.H {
		return s.Pix, pw, ph
	}
	pix = make([]byte, pw*ph*4)
	for y := 0; y < s.H; y++ {
		copy(pix[y*pw*4:y*pw*4+s.W*4], s.Pix[y*s.W*4:(y+1)*s.W*4])
	}
	return pix, pw, ph
}
