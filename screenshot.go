package blit

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// Screenshot reads the current framebuffer back from the device and
// writes it to path as a PNG. The framebuffer arrives bottom row first
// and is flipped to the image convention on the way out.
func (c *Context) Screenshot(path string) error {
	pix, w, h, err := c.device.ReadPixels()
	if err != nil {
		return fmt.Errorf("blit: read framebuffer: %w", err)
	}
	if w <= 0 || h <= 0 || len(pix) < w*h*4 {
		return fmt.Errorf("blit: framebuffer unavailable")
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := pix[(h-1-y)*w*4 : (h-y)*w*4]
		copy(img.Pix[y*img.Stride:y*img.Stride+w*4], src)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("blit: create screenshot file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("blit: encode screenshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("blit: close screenshot file: %w", err)
	}

	c.checkErr("screenshot")
	return nil
}
