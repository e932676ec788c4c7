package blit

import (
	"testing"

	"github.com/gogpu/blit/render"
)

// drawTexture builds a plain 64x64 texture wired to the recorder.
func drawTexture(t *testing.T, rec *render.Recorder) *Texture {
	t.Helper()
	h, err := rec.CreateTexture(make([]byte, 64*64*4), 64, 64, render.TextureOptions{})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	tex := &Texture{LogicalW: 64, LogicalH: 64, PhysicalW: 64, PhysicalH: 64, Handle: h}
	tex.setSheet(1, 1)
	return tex
}

func TestBlitRelativeFollowsCamera(t *testing.T) {
	ctx, rec := newTestContext(t, 800, 600, nil)
	tex := drawTexture(t, rec)

	cam := Point{X: 100, Y: 50}
	ctx.BindCamera(&cam)

	ctx.BlitRelative(tex, Point{X: 100, Y: 50}, 0, 0, nil)
	if len(rec.Quads) != 1 {
		t.Fatalf("quads = %d, want 1", len(rec.Quads))
	}
	// The cell is centered on the camera-mapped point.
	v0 := rec.Quads[0].Quad.V[0]
	if v0.X != -32 || v0.Y != -32 {
		t.Errorf("V[0] = (%v, %v), want (-32, -32)", v0.X, v0.Y)
	}

	// Moving the camera through the bound pointer moves the draw.
	cam.X = 50
	ctx.BlitRelative(tex, Point{X: 100, Y: 50}, 0, 0, nil)
	v0 = rec.Quads[1].Quad.V[0]
	if v0.X != 18 {
		t.Errorf("V[0].X after camera move = %v, want 18", v0.X)
	}
}

func TestBlitRelativeUnboundCameraIsOrigin(t *testing.T) {
	ctx, rec := newTestContext(t, 800, 600, nil)
	tex := drawTexture(t, rec)

	ctx.BlitRelative(tex, Point{}, 0, 0, nil)
	if len(rec.Quads) != 1 {
		t.Fatalf("quads = %d, want 1", len(rec.Quads))
	}
	v0 := rec.Quads[0].Quad.V[0]
	if v0.X != -32 || v0.Y != -32 {
		t.Errorf("V[0] = (%v, %v), want (-32, -32)", v0.X, v0.Y)
	}
}

func TestBlitRelativeCullsOffscreen(t *testing.T) {
	ctx, rec := newTestContext(t, 800, 600, nil)
	tex := drawTexture(t, rec)

	// Half a screen plus one cell on either axis is the reject line.
	ctx.BlitRelative(tex, Point{X: 500}, 0, 0, nil)
	ctx.BlitRelative(tex, Point{Y: 400}, 0, 0, nil)
	if len(rec.Quads) != 0 {
		t.Fatalf("off-screen draws emitted %d quads", len(rec.Quads))
	}

	// Just inside the margin still draws.
	ctx.BlitRelative(tex, Point{X: 420}, 0, 0, nil)
	if len(rec.Quads) != 1 {
		t.Errorf("near-edge draw culled")
	}
}

func TestBlitRelativeGUIOffset(t *testing.T) {
	ctx, rec := newTestContext(t, 800, 600, nil)
	tex := drawTexture(t, rec)

	ctx.SetGUIOffset(-60, 10)
	ctx.BlitRelative(tex, Point{}, 0, 0, nil)

	v0 := rec.Quads[0].Quad.V[0]
	if v0.X != -92 || v0.Y != -22 {
		t.Errorf("V[0] = (%v, %v), want (-92, -22)", v0.X, v0.Y)
	}
}

func TestBlitAbsolute(t *testing.T) {
	ctx, rec := newTestContext(t, 800, 600, nil)
	tex := drawTexture(t, rec)

	// Screen origin is the bottom-left corner.
	ctx.BlitAbsolute(tex, Point{}, 0, 0, nil)
	v0 := rec.Quads[0].Quad.V[0]
	if v0.X != -400 || v0.Y != -300 {
		t.Errorf("V[0] = (%v, %v), want (-400, -300)", v0.X, v0.Y)
	}

	// Absolute draws are never culled.
	ctx.BlitAbsolute(tex, Point{X: 5000, Y: 5000}, 0, 0, nil)
	if len(rec.Quads) != 2 {
		t.Errorf("absolute off-screen draw was culled")
	}
}

func TestBlitScaled(t *testing.T) {
	ctx, rec := newTestContext(t, 800, 600, nil)
	tex := drawTexture(t, rec)

	ctx.BlitScaled(tex, Point{X: 400, Y: 300}, 128, 32, nil)
	q := rec.Quads[0].Quad
	if q.V[0].X != 0 || q.V[0].Y != 0 {
		t.Errorf("V[0] = (%v, %v), want (0, 0)", q.V[0].X, q.V[0].Y)
	}
	if got := q.V[2].X - q.V[0].X; got != 128 {
		t.Errorf("quad width = %v, want 128", got)
	}
	if got := q.V[2].Y - q.V[0].Y; got != 32 {
		t.Errorf("quad height = %v, want 32", got)
	}
}

func TestBlitTint(t *testing.T) {
	ctx, rec := newTestContext(t, 800, 600, nil)
	tex := drawTexture(t, rec)

	ctx.BlitAbsolute(tex, Point{}, 0, 0, nil)
	if got := rec.Quads[0].Color; got != (render.Color{R: 1, G: 1, B: 1, A: 1}) {
		t.Errorf("untinted color = %+v, want opaque white", got)
	}

	tint := RGBA{R: 1, G: 0.5, B: 0.25, A: 0.75}
	ctx.BlitAbsolute(tex, Point{}, 0, 0, &tint)
	got := rec.Quads[1].Color
	if got.G != 0.5 || got.A != 0.75 {
		t.Errorf("tinted color = %+v, want %+v", got, tint)
	}
}

func TestBlitSheetCellTexels(t *testing.T) {
	ctx, rec := newTestContext(t, 800, 600, nil)
	h, err := rec.CreateTexture(make([]byte, 256*128*4), 256, 128, render.TextureOptions{})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	tex := &Texture{LogicalW: 256, LogicalH: 128, PhysicalW: 256, PhysicalH: 128, Handle: h}
	tex.setSheet(4, 2)

	ctx.BlitAbsolute(tex, Point{}, 1, 0, nil)
	q := rec.Quads[0].Quad
	if q.T[0].X != 0.25 || q.T[0].Y != 0.5 {
		t.Errorf("T[0] = (%v, %v), want (0.25, 0.5)", q.T[0].X, q.T[0].Y)
	}
	if q.T[2].X != 0.5 || q.T[2].Y != 1 {
		t.Errorf("T[2] = (%v, %v), want (0.5, 1)", q.T[2].X, q.T[2].Y)
	}
	if rec.Quads[0].Texture != h {
		t.Error("draw not bound to the sheet texture")
	}
}
