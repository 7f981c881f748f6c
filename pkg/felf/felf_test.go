package felf

import (
	"bytes"
	"errors"
	"testing"
)

func scenarioA() []byte {
	return Encode(Header{Entry: 0x00400000, Base: 0x00400000}, []byte{0x90, 0x90, 0x90, 0xC3})
}

func TestParse_TooShort(t *testing.T) {
	full := scenarioA()
	for n := 0; n < HeaderSize; n++ {
		_, _, err := Parse(full[:n])
		if !errors.Is(err, ErrTooShort) {
			t.Errorf("Parse(len=%d) error = %v, want ErrTooShort", n, err)
		}
	}
}

func TestParse_BadMagic(t *testing.T) {
	tests := []struct {
		name  string
		magic string
	}{
		{"zeros", "\x00\x00\x00\x00\x00\x00\x00\x00"},
		{"older version", "FELF0000"},
		{"lowercase", "felf0001"},
		{"elf magic", "\x7fELF\x01\x01\x01\x00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := scenarioA()
			copy(b, tt.magic)
			_, _, err := Parse(b)
			if !errors.Is(err, ErrBadMagic) {
				t.Fatalf("Parse() error = %v, want ErrBadMagic", err)
			}
		})
	}
}

func TestParse_UnsupportedAddressWidth(t *testing.T) {
	tests := []struct {
		name      string
		hiOffset  int
		wantField string
	}{
		{"entry high word", 12, "entry"},
		{"base high word", 20, "base"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := scenarioA()
			ByteOrder.PutUint32(b[tt.hiOffset:], 1)
			_, _, err := Parse(b)
			if !errors.Is(err, ErrUnsupportedAddressWidth) {
				t.Fatalf("Parse() error = %v, want ErrUnsupportedAddressWidth", err)
			}
			var fe *FormatError
			if !errors.As(err, &fe) || fe.Field != tt.wantField {
				t.Fatalf("FormatError field = %+v, want %s", fe, tt.wantField)
			}
		})
	}
}

func TestParse_ScenarioA(t *testing.T) {
	b := scenarioA()
	if len(b) != 28 {
		t.Fatalf("len = %d, want 28", len(b))
	}
	h, off, err := Parse(b)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if h.Entry != 0x00400000 || h.Base != 0x00400000 {
		t.Errorf("header = %v", h)
	}
	if off != HeaderSize {
		t.Errorf("body offset = %d, want %d", off, HeaderSize)
	}
	if !bytes.Equal(b[off:], []byte{0x90, 0x90, 0x90, 0xC3}) {
		t.Errorf("body = %x", b[off:])
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	img, err := Decode(Encode(Header{Entry: 1, Base: 0x10000}, nil))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(img.Body) != 0 {
		t.Errorf("body length = %d, want 0", len(img.Body))
	}
	if img.End() != 0x10000 {
		t.Errorf("End() = %#x, want %#x", img.End(), 0x10000)
	}
}

func TestImage_EndBeyond32Bits(t *testing.T) {
	img := Image{Header: Header{Base: 0xFFFFFFF0}, Body: make([]byte, 0x20)}
	if got, want := img.End(), uint64(0x100000010); got != want {
		t.Errorf("End() = %#x, want %#x", got, want)
	}
}

func TestEncode_Layout(t *testing.T) {
	b := Encode(Header{Entry: 0x11223344, Base: 0x55667788}, []byte{0xAA})
	if string(b[:8]) != Magic {
		t.Errorf("magic = %q", b[:8])
	}
	if got := ByteOrder.Uint32(b[8:]); got != 0x11223344 {
		t.Errorf("entry low = %#x", got)
	}
	if got := ByteOrder.Uint32(b[12:]); got != 0 {
		t.Errorf("entry high = %#x", got)
	}
	if got := ByteOrder.Uint32(b[16:]); got != 0x55667788 {
		t.Errorf("base low = %#x", got)
	}
	if got := ByteOrder.Uint32(b[20:]); got != 0 {
		t.Errorf("base high = %#x", got)
	}
	if b[24] != 0xAA || len(b) != 25 {
		t.Errorf("body = %x", b[24:])
	}
}

func TestCursor_Bounds(t *testing.T) {
	c := newCursor([]byte{1, 2, 3, 4, 5, 6})
	if _, err := c.uint32(); err != nil {
		t.Fatalf("uint32: %v", err)
	}
	if _, _, err := c.address(); err == nil {
		t.Fatal("address past end: want error")
	}
	if c.offset() != 4 {
		t.Errorf("offset after failed read = %d, want 4", c.offset())
	}
	if _, err := c.bytes(3); err == nil {
		t.Fatal("bytes past end: want error")
	}
	if _, err := c.bytes(-1); err == nil {
		t.Fatal("negative length: want error")
	}
	if v, err := c.bytes(2); err != nil || !bytes.Equal(v, []byte{5, 6}) {
		t.Fatalf("bytes(2) = %v, %v", v, err)
	}
}
