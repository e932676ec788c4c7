package blit

import (
	"image/color"
	"testing"
)

func TestBitsetLayout(t *testing.T) {
	b := NewBitset(12)
	if b.Len() != 12 {
		t.Fatalf("Len() = %d, want 12", b.Len())
	}
	if len(b.Bytes()) != 2 {
		t.Fatalf("backing bytes = %d, want 2", len(b.Bytes()))
	}

	b.Set(0)
	b.Set(9)
	if got := b.Bytes()[0]; got != 0x01 {
		t.Errorf("byte 0 = %#x, want 0x01", got)
	}
	if got := b.Bytes()[1]; got != 0x02 {
		t.Errorf("byte 1 = %#x, want 0x02", got)
	}

	if !b.Get(0) || !b.Get(9) {
		t.Error("set bits read as clear")
	}
	if b.Get(1) || b.Get(8) {
		t.Error("clear bits read as set")
	}
}

func TestBitsetOutOfRange(t *testing.T) {
	b := NewBitset(8)
	b.Set(-1)
	b.Set(8)
	if b.Get(-1) || b.Get(8) {
		t.Error("out-of-range reads as set")
	}
	for _, v := range b.Bytes() {
		if v != 0 {
			t.Error("out-of-range Set modified storage")
		}
	}
}

func TestMapTransparency(t *testing.T) {
	s := NewSurface(3, 2)
	s.SetPixel(0, 0, color.NRGBA{R: 255, A: 255})
	s.SetPixel(2, 1, color.NRGBA{G: 255, A: 255})

	m := mapTransparency(s)
	if m.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", m.Len())
	}
	// Bits are set for opaque pixels, row-major.
	if !m.Get(0) || !m.Get(5) {
		t.Error("opaque pixels not marked")
	}
	for _, i := range []int{1, 2, 3, 4} {
		if m.Get(i) {
			t.Errorf("transparent pixel %d marked opaque", i)
		}
	}
}
