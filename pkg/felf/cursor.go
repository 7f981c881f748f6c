package felf

import "io"

// cursor reads typed values from an immutable byte slice. Every read is
// bounds checked; a read past the end returns io.ErrUnexpectedEOF and leaves
// the position unchanged.
type cursor struct {
	b   []byte
	off int
}

func newCursor(b []byte) *cursor { return &cursor{b: b} }

func (c *cursor) remaining() int { return len(c.b) - c.off }

func (c *cursor) offset() int { return c.off }

func (c *cursor) bytes(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, io.ErrUnexpectedEOF
	}
	v := c.b[c.off : c.off+n : c.off+n]
	c.off += n
	return v, nil
}

func (c *cursor) uint32() (uint32, error) {
	v, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return ByteOrder.Uint32(v), nil
}

// address reads a (low, high) pair of 32-bit words.
func (c *cursor) address() (low, high uint32, err error) {
	if c.remaining() < 8 {
		return 0, 0, io.ErrUnexpectedEOF
	}
	low, _ = c.uint32()
	high, _ = c.uint32()
	return low, high, nil
}
