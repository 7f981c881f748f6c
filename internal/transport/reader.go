package transport

import (
	"fmt"
	"io"

	"github.com/bft-labs/felfship/internal/domain"
	"github.com/bft-labs/felfship/pkg/felf"
)

// LengthSize is the size of the payload length prefix.
const LengthSize = 4

// ReadExact reads exactly n bytes from r, accumulating partial deliveries.
// Any read that returns no data fails the whole call; the returned error
// wraps domain.ErrShortRead and, if present, the cause reported by r.
func ReadExact(r io.Reader, n uint32) ([]byte, error) {
	buf := make([]byte, n)
	if err := readFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func readFull(r io.Reader, buf []byte) error {
	var off int
	for off < len(buf) {
		m, err := r.Read(buf[off:])
		if m > 0 {
			off += m
			continue
		}
		if err == nil || err == io.EOF {
			return fmt.Errorf("%w: got %d of %d bytes", domain.ErrShortRead, off, len(buf))
		}
		return fmt.Errorf("%w: got %d of %d bytes: %w", domain.ErrShortRead, off, len(buf), err)
	}
	return nil
}

// ReadLength reads the 4-byte payload length prefix.
func ReadLength(r io.Reader) (uint32, error) {
	var b [LengthSize]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return felf.ByteOrder.Uint32(b[:]), nil
}

// Reader reads length-prefixed payloads.
type Reader struct {
	// MaxPayload caps the declared length. Zero means no cap.
	MaxPayload uint32
}

// ReadPayload reads the length prefix and then exactly that many bytes.
func (rd Reader) ReadPayload(r io.Reader) ([]byte, error) {
	n, err := ReadLength(r)
	if err != nil {
		return nil, err
	}
	if err := rd.CheckLength(n); err != nil {
		return nil, err
	}
	return ReadExact(r, n)
}

// CheckLength validates a declared payload length against MaxPayload.
func (rd Reader) CheckLength(n uint32) error {
	if rd.MaxPayload > 0 && n > rd.MaxPayload {
		return fmt.Errorf("%w: %d > %d", domain.ErrPayloadTooLarge, n, rd.MaxPayload)
	}
	return nil
}
