package blit

import "github.com/gogpu/blit/render"

// DefaultBaseline is the target size, in logical units, of the shorter
// screen axis. Displays smaller than this are scaled up so game
// coordinates keep a consistent meaning across resolutions.
const DefaultBaseline = 600

// Viewport is the derived display state, recomputed whenever the window
// or display size changes.
type Viewport struct {
	// RawW, RawH are the real display dimensions in device pixels.
	RawW, RawH int

	// W, H are the logical dimensions after letterboxing. Drawing and
	// culling happen in these units.
	W, H float64

	// NativeW, NativeH are the projection dimensions covering the full
	// real resolution at the logical aspect.
	NativeW, NativeH float64

	// Scale is the global scale factor; 1 when no rescaling is needed.
	Scale float64

	// WScale, HScale adjust the projection when letterboxing
	// (native over logical per axis).
	WScale, HScale float64

	// MouseXScale, MouseYScale map raw pointer coordinates into logical
	// space (logical over real per axis).
	MouseXScale, MouseYScale float64
}

// computeViewport derives the full viewport state for a raw display size
// against a baseline logical unit size.
//
// When the shorter axis is below the baseline the display is rescaled:
// that axis becomes exactly baseline logical units, the other axis is
// rescaled proportionally, and the native size keeps the real pixel
// coverage for the projection.
func computeViewport(rawW, rawH int, baseline float64) Viewport {
	v := Viewport{
		RawW: rawW, RawH: rawH,
		W: float64(rawW), H: float64(rawH),
		NativeW: float64(rawW), NativeH: float64(rawH),
		Scale: 1,
	}

	rw, rh := float64(rawW), float64(rawH)
	switch {
	case rw < baseline && rw <= rh:
		v.Scale = rw / baseline
		// Keep the proportion the same for the screen.
		v.H = rh * baseline / rw
		v.NativeH = rh * rw / baseline
		v.W = baseline
	case rh < baseline && rw >= rh:
		v.Scale = rh / baseline
		v.W = rw * baseline / rh
		v.NativeW = rw * rh / baseline
		v.H = baseline
	}

	v.WScale = v.NativeW / v.W
	v.HScale = v.NativeH / v.H
	v.MouseXScale = v.W / rw
	v.MouseYScale = v.H / rh
	return v
}

// Projection returns the raw-space orthographic projection for this
// viewport. The extra (WScale, HScale) factor keeps drawing coordinates
// in logical units whenever the global scale differs from 1.
func (v Viewport) Projection() render.Projection {
	p := render.Projection{
		Left: -v.NativeW / 2, Right: v.NativeW / 2,
		Bottom: -v.NativeH / 2, Top: v.NativeH / 2,
		ScaleX: 1, ScaleY: 1,
	}
	if v.Scale != 1 {
		p.ScaleX = v.WScale
		p.ScaleY = v.HScale
	}
	return p
}

// PointerToLogical converts raw input-device coordinates into logical
// coordinates using the pointer-mapping scale factors.
func (v Viewport) PointerToLogical(x, y float64) (float64, float64) {
	return x * v.MouseXScale, y * v.MouseYScale
}
