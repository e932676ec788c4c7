package blit

import "math"

// TexelRect is a sub-rectangle of a texture in normalized texel
// coordinates (0..1 across the physical storage).
type TexelRect struct {
	X, Y, W, H float64
}

// CellRect returns the texel rectangle of sheet cell (sx, sy).
//
// The row index is flipped against the sheet height because textures
// are stored bottom-up: cell row 0 addresses the top row of the logical
// image, which lives at the high end of texel space.
func (t *Texture) CellRect(sx, sy int) TexelRect {
	return TexelRect{
		X: t.CellW * float64(sx) / t.PhysicalW,
		Y: t.CellH * (t.Rows - float64(sy) - 1) / t.PhysicalH,
		W: t.CellW / t.PhysicalW,
		H: t.CellH / t.PhysicalH,
	}
}

// fullRect returns the texel rectangle covering one full cell starting
// at the texture origin, used by scaled blits that ignore sheet
// addressing.
func (t *Texture) fullRect() TexelRect {
	return TexelRect{
		W: t.CellW / t.PhysicalW,
		H: t.CellH / t.PhysicalH,
	}
}

// CellForHeading maps a heading in radians onto the sheet cell whose
// angular slice contains it, treating the Cols*Rows cells as slices of
// a full turn. The heading is offset by half a slice so slice centers,
// not slice edges, land on the cell boundaries.
//
// Quirk, kept for compatibility: a heading whose offset form is
// negative clamps to slice zero instead of wrapping into [0, 2pi).
// Normalize the heading first if wrapping is wanted.
func CellForHeading(t *Texture, heading float64) (sx, sy int) {
	n := int(t.Cols * t.Rows)
	shard := 2 * math.Pi / float64(n)

	rdir := heading + shard/2
	if rdir < 0 {
		rdir = 0
	}

	s := int(rdir / shard)
	if s > n-1 {
		s = s % n
	}
	return s % int(t.Cols), s / int(t.Cols)
}
