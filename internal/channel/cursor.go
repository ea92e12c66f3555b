package channel

// PixelSize is the number of bytes per RGBA8 pixel.
const PixelSize = 4

// Cursor walks the R, G and B byte positions of an RGBA8 buffer in order,
// skipping every 4th (alpha) byte. It never moves backwards.
type Cursor struct {
	idx, n int
}

// NewCursor returns a cursor over a buffer of n bytes.
func NewCursor(n int) *Cursor {
	return &Cursor{n: n}
}

// Next returns the next usable byte index.
// ok is false once the buffer is exhausted.
func (c *Cursor) Next() (idx int, ok bool) {
	for c.idx < c.n && IsAlpha(c.idx) {
		c.idx++
	}
	if c.idx >= c.n {
		return c.idx, false
	}
	idx = c.idx
	c.idx++
	return idx, true
}

// Pos returns the index the next call to Next starts scanning from.
func (c *Cursor) Pos() int {
	return c.idx
}

// IsAlpha reports whether idx addresses the alpha byte of its pixel.
func IsAlpha(idx int) bool {
	return (idx+1)%PixelSize == 0
}

// Usable returns how many non-alpha bytes a buffer of n bytes exposes.
// A trailing incomplete pixel is not counted.
func Usable(n int) int {
	return (n / PixelSize) * 3
}
