package blit

import (
	"image/color"
	"os"

	"github.com/gogpu/blit/render"
)

// LoadFlags control optional work performed while loading a texture.
type LoadFlags uint32

const (
	// LoadMapTransparency builds the per-pixel transparency map for
	// pixel-accurate hit testing. Costs one bit per logical pixel.
	LoadMapTransparency LoadFlags = 1 << iota
)

// Option configures a Context during creation.
//
// Example:
//
//	rc := blit.NewContext(device, 800, 600,
//		blit.WithAssets(blit.FSAssets{FS: packFS}),
//		blit.WithColorKey(color.NRGBA{R: 255, B: 255, A: 255}),
//	)
type Option func(*options)

type options struct {
	assets    AssetReader
	baseline  float64
	filter    render.FilterMode
	filterSet bool
	colorKey  color.Color
}

func defaultOptions() options {
	return options{
		assets:   FSAssets{FS: os.DirFS(".")},
		baseline: DefaultBaseline,
	}
}

// WithAssets sets the asset reader textures are loaded through.
// The default reads loose files relative to the working directory.
func WithAssets(a AssetReader) Option {
	return func(o *options) {
		if a != nil {
			o.assets = a
		}
	}
}

// WithBaseline overrides the baseline logical unit size used for
// viewport scaling. The default is DefaultBaseline.
func WithBaseline(units float64) Option {
	return func(o *options) {
		if units > 0 {
			o.baseline = units
		}
	}
}

// WithFilter forces a texture sampling filter for every load. Without
// this option the filter follows the viewport: linear when the display
// is scaled, nearest otherwise.
func WithFilter(f render.FilterMode) Option {
	return func(o *options) {
		o.filter = f
		o.filterSet = true
	}
}

// WithColorKey declares a color treated as fully transparent when
// building transparency maps, for assets without an alpha channel.
func WithColorKey(c color.Color) Option {
	return func(o *options) {
		o.colorKey = c
	}
}
