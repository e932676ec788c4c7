package blit

import (
	"github.com/gogpu/blit/render"
)

// Texture is one GPU-backed image plus its dimension metadata and
// sprite-sheet geometry. Textures acquired by path are shared and
// use-counted by the owning Context; textures built from a Surface are
// anonymous and owned solely by their caller.
//
// All dimensions are in logical pixels. The physical size is the
// power-of-two padded storage actually allocated on the GPU.
type Texture struct {
	// LogicalW, LogicalH are the nominal image dimensions.
	LogicalW, LogicalH float64

	// PhysicalW, PhysicalH are the GPU storage dimensions: the smallest
	// powers of two that fit the logical size.
	PhysicalW, PhysicalH float64

	// Cols, Rows are the sprite-sheet grid. 1x1 for plain images.
	// Integral-valued; kept as float64 because every consumer is
	// coordinate math.
	Cols, Rows float64

	// CellW, CellH are the dimensions of one sheet cell:
	// LogicalW/Cols and LogicalH/Rows.
	CellW, CellH float64

	// Handle is the device texture. Exclusively owned by this Texture.
	Handle render.TextureHandle

	// trans is the optional per-pixel opacity map, present only when the
	// texture was loaded with LoadMapTransparency.
	trans *Bitset

	// identity is the cache key (the asset path); empty for anonymous
	// textures built from a Surface.
	identity string
}

// NextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func NextPowerOfTwo(n int) int {
	i := 1
	for i < n {
		i <<= 1
	}
	return i
}

// Identity returns the asset path this texture was acquired under, or
// the empty string for anonymous textures.
func (t *Texture) Identity() string { return t.identity }

// HasTransparencyMap reports whether pixel-accurate testing is available.
func (t *Texture) HasTransparencyMap() bool { return t != nil && t.trans != nil }

// IsTransparent reports whether logical pixel (x, y) is transparent.
// Coordinates follow the texture's bottom-up storage order, matching
// texel addressing. Without a transparency map every pixel reads as
// opaque.
func (t *Texture) IsTransparent(x, y int) bool {
	if t == nil || t.trans == nil {
		return false
	}
	return !t.trans.Get(y*int(t.LogicalW) + x)
}

// setSheet stamps sprite-sheet geometry onto the texture. The same asset
// must always be loaded with the same grid: re-stamping a shared texture
// overwrites the previous geometry for every holder.
func (t *Texture) setSheet(cols, rows int) {
	t.Cols = float64(cols)
	t.Rows = float64(rows)
	t.CellW = t.LogicalW / t.Cols
	t.CellH = t.LogicalH / t.Rows
}
