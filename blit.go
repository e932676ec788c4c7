package blit

import (
	"math"

	"github.com/gogpu/blit/render"
)

// blitQuad is the draw primitive every public blit resolves to: bind
// the texture, pick the tint, and emit one quad from (x, y) in raw
// space with the given destination size and texel rectangle. The device
// error state is polled afterwards and surfaced as a warning.
func (c *Context) blitQuad(t *Texture, x, y, w, h float64, r TexelRect, tint *RGBA) {
	c.device.BindTexture(t.Handle)

	col := render.Color{R: 1, G: 1, B: 1, A: 1}
	if tint != nil {
		col = render.Color{R: tint.R, G: tint.G, B: tint.B, A: tint.A}
	}

	c.device.DrawQuad(render.Quad{
		V: [4]render.Vec2{
			{X: x, Y: y},
			{X: x + w, Y: y},
			{X: x + w, Y: y + h},
			{X: x, Y: y + h},
		},
		T: [4]render.Vec2{
			{X: r.X, Y: r.Y},
			{X: r.X + r.W, Y: r.Y},
			{X: r.X + r.W, Y: r.Y + r.H},
			{X: r.X, Y: r.Y + r.H},
		},
	}, col)

	c.checkErr("draw quad")
}

// BlitRelative draws sheet cell (sx, sy) of t at a camera-relative
// position: pos is a world position, the bound camera maps it onto the
// screen, and the cell is centered on the resulting point (plus the GUI
// offsets). Draws that resolve farther than half a screen plus one cell
// from the origin on either axis are skipped; that is off-screen
// rejection, not an error.
func (c *Context) BlitRelative(t *Texture, pos Point, sx, sy int, tint *RGBA) {
	var cam Point
	if c.camera != nil {
		cam = *c.camera
	}

	x := pos.X - cam.X - t.CellW/2 + c.guiOff.X
	y := pos.Y - cam.Y - t.CellH/2 + c.guiOff.Y

	if math.Abs(x) > c.view.W/2+t.CellW ||
		math.Abs(y) > c.view.H/2+t.CellH {
		return
	}

	c.blitQuad(t, x, y, t.CellW, t.CellH, t.CellRect(sx, sy), tint)
}

// BlitAbsolute draws sheet cell (sx, sy) of t with its bottom-left
// corner at pos in absolute screen coordinates (origin bottom-left).
// No culling is performed.
func (c *Context) BlitAbsolute(t *Texture, pos Point, sx, sy int, tint *RGBA) {
	x := pos.X - c.view.W/2
	y := pos.Y - c.view.H/2
	c.blitQuad(t, x, y, t.CellW, t.CellH, t.CellRect(sx, sy), tint)
}

// BlitScaled draws t at pos in absolute screen coordinates scaled to an
// explicit destination size, independent of sheet geometry. Used for UI
// elements whose size is decided by layout rather than by the asset.
func (c *Context) BlitScaled(t *Texture, pos Point, w, h float64, tint *RGBA) {
	x := pos.X - c.view.W/2
	y := pos.Y - c.view.H/2
	c.blitQuad(t, x, y, w, h, t.fullRect(), tint)
}
