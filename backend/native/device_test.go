package native

import (
	"testing"
	"unsafe"

	"github.com/gogpu/blit/render"
)

func TestQuadParamsLayout(t *testing.T) {
	// The Go struct is uploaded byte-for-byte as the shader's uniform,
	// so its size must match the WGSL QuadParams layout exactly.
	if size := unsafe.Sizeof(quadParams{}); size != 112 {
		t.Fatalf("sizeof(quadParams) = %d, want 112", size)
	}
}

func TestToPixelMapping(t *testing.T) {
	d := &Device{
		fbW: 800, fbH: 600,
		proj: render.Projection{
			Left: -400, Right: 400, Bottom: -300, Top: 300,
			ScaleX: 1, ScaleY: 1,
		},
	}

	x, y := d.toPixel(0, 0)
	if x != 400 || y != 300 {
		t.Errorf("toPixel(0,0) = (%v, %v), want center (400, 300)", x, y)
	}
	x, y = d.toPixel(-400, -300)
	if x != 0 || y != 0 {
		t.Errorf("toPixel(-400,-300) = (%v, %v), want (0, 0)", x, y)
	}
	x, y = d.toPixel(400, 300)
	if x != 800 || y != 600 {
		t.Errorf("toPixel(400,300) = (%v, %v), want (800, 600)", x, y)
	}
}

func TestToPixelLetterboxScale(t *testing.T) {
	// A 400x600 display at the 600-unit baseline: logical 600x900,
	// native 400x400, per-axis projection scales 2/3 and 4/9.
	d := &Device{
		fbW: 400, fbH: 400,
		proj: render.Projection{
			Left: -200, Right: 200, Bottom: -200, Top: 200,
			ScaleX: 2.0 / 3.0, ScaleY: 4.0 / 9.0,
		},
	}

	x, _ := d.toPixel(300, 0)
	if x != 400 {
		t.Errorf("toPixel(300,0).x = %v, want right edge 400", x)
	}
	_, y := d.toPixel(0, -450)
	if y != 0 {
		t.Errorf("toPixel(0,-450).y = %v, want bottom edge 0", y)
	}
}

func TestToPixelZeroScaleDefaultsToOne(t *testing.T) {
	d := &Device{
		fbW: 100, fbH: 100,
		proj: render.Projection{Left: -50, Right: 50, Bottom: -50, Top: 50},
	}
	x, y := d.toPixel(0, 0)
	if x != 50 || y != 50 {
		t.Errorf("toPixel(0,0) = (%v, %v), want (50, 50)", x, y)
	}
}
