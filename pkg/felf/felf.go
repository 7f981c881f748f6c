package felf

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	// Magic identifies a FELF container.
	Magic = "FELF0001"

	// HeaderSize is the fixed size of the container header.
	HeaderSize = 24

	// MaxAddress is the largest address representable in a container.
	MaxAddress = 1<<32 - 1
)

// ByteOrder is the order of the wire length prefix and of every header word.
// It is the host's native order; both peers are assumed to agree on it.
var ByteOrder binary.ByteOrder = binary.NativeEndian

// Header is the validated container header.
type Header struct {
	// Entry is the absolute address control is transferred to.
	Entry uint32

	// Base is the absolute address the body is copied to.
	Base uint32
}

func (h Header) String() string {
	return fmt.Sprintf("entry=%#x base=%#x", h.Entry, h.Base)
}

// Image is a parsed container. Body aliases the buffer it was decoded from.
type Image struct {
	Header
	Body []byte
}

// End returns the first address past the body once loaded at Base.
// It is computed in 64 bits; base+len may exceed the 32-bit range.
func (img Image) End() uint64 {
	return uint64(img.Base) + uint64(len(img.Body))
}

// Parse validates buf as a FELF container and returns its header and the
// offset at which the body starts. Only the container is checked, never the
// code itself.
func Parse(buf []byte) (Header, int, error) {
	if len(buf) < HeaderSize {
		return Header{}, 0, &FormatError{Err: ErrTooShort}
	}
	c := newCursor(buf)

	magic, _ := c.bytes(len(Magic))
	if !bytes.Equal(magic, []byte(Magic)) {
		return Header{}, 0, &FormatError{Field: "magic", Offset: 0, Err: ErrBadMagic}
	}

	entry, hi, err := c.address()
	if err != nil {
		return Header{}, 0, &FormatError{Field: "entry", Offset: 8, Err: ErrTooShort}
	}
	if hi != 0 {
		return Header{}, 0, &FormatError{Field: "entry", Offset: 8, Err: ErrUnsupportedAddressWidth}
	}

	base, hi, err := c.address()
	if err != nil {
		return Header{}, 0, &FormatError{Field: "base", Offset: 16, Err: ErrTooShort}
	}
	if hi != 0 {
		return Header{}, 0, &FormatError{Field: "base", Offset: 16, Err: ErrUnsupportedAddressWidth}
	}

	return Header{Entry: entry, Base: base}, c.offset(), nil
}

// Decode parses buf and returns the header together with a view of the body.
func Decode(buf []byte) (Image, error) {
	h, off, err := Parse(buf)
	if err != nil {
		return Image{}, err
	}
	return Image{Header: h, Body: buf[off:]}, nil
}

// AppendHeader appends the encoded header to dst.
func AppendHeader(dst []byte, h Header) []byte {
	var hdr [HeaderSize]byte
	copy(hdr[:8], Magic)
	ByteOrder.PutUint32(hdr[8:12], h.Entry)
	ByteOrder.PutUint32(hdr[16:20], h.Base)
	return append(dst, hdr[:]...)
}

// Encode builds a container from a header and body.
func Encode(h Header, body []byte) []byte {
	out := make([]byte, 0, HeaderSize+len(body))
	out = AppendHeader(out, h)
	return append(out, body...)
}
