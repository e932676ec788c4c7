package blit

// Bitset is a fixed-size bit array. The transparency maps built at load
// time use one bit per logical pixel, row-major, 8 pixels per byte:
// pixel (x, y) of a w-wide image lives at bit (y*w+x)%8 of byte (y*w+x)/8.
// That layout is a compatibility contract and must not change.
type Bitset struct {
	n    int
	bits []byte
}

// NewBitset creates a bitset holding n bits, all clear.
func NewBitset(n int) *Bitset {
	return &Bitset{n: n, bits: make([]byte, (n+7)/8)}
}

// Len returns the number of bits in the set.
func (b *Bitset) Len() int { return b.n }

// Set sets bit i. Out-of-range indices are ignored.
func (b *Bitset) Set(i int) {
	if i < 0 || i >= b.n {
		return
	}
	b.bits[i/8] |= 1 << (i % 8)
}

// Get reports whether bit i is set. Out-of-range indices read as clear.
func (b *Bitset) Get(i int) bool {
	if i < 0 || i >= b.n {
		return false
	}
	return b.bits[i/8]&(1<<(i%8)) != 0
}

// Bytes exposes the backing storage. The slice must not be resized.
func (b *Bitset) Bytes() []byte { return b.bits }

// mapTransparency builds the per-pixel opacity map for a surface: each
// bit is set when the pixel is opaque, left clear when it matches the
// surface's transparency test. The surface must already be flipped to
// the renderer's bottom-up convention so queries line up with texels.
func mapTransparency(s *Surface) *Bitset {
	m := NewBitset(s.W * s.H)
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			if !s.isTransparent(x, y) {
				m.Set(y*s.W + x)
			}
		}
	}
	return m
}
