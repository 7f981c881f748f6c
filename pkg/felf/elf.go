package felf

import (
	"debug/elf"
	"errors"
	"fmt"
	"io"
)

// MaxImageSize bounds the flattened image FromELF will build. Segment memory
// sizes come from the ELF headers, so without a bound a tiny file could ask
// for gigabytes of zero fill.
const MaxImageSize = 256 << 20

// FromELF flattens the loadable segments of a statically linked ELF into a
// single FELF image. The base is the lowest segment address and the entry is
// the ELF entry point. Gaps between segments and the zero-initialised tail
// of each segment are filled with zeros. Images larger than MaxImageSize are
// rejected before anything is allocated.
func FromELF(r io.ReaderAt) (Image, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return Image{}, fmt.Errorf("felf: read elf: %w", err)
	}
	defer f.Close()

	var (
		loads  []*elf.Prog
		lo, hi uint64
	)
	for i, p := range f.Progs {
		if p.Type != elf.PT_LOAD || p.Memsz == 0 {
			continue
		}
		if p.Filesz > p.Memsz {
			return Image{}, fmt.Errorf("felf: segment %d: file size %#x exceeds memory size %#x", i, p.Filesz, p.Memsz)
		}
		end := p.Vaddr + p.Memsz
		if end < p.Vaddr || end > MaxAddress+1 {
			return Image{}, fmt.Errorf("felf: segment %d at %#x: %w", i, p.Vaddr, ErrUnsupportedAddressWidth)
		}
		if len(loads) == 0 || p.Vaddr < lo {
			lo = p.Vaddr
		}
		if end > hi {
			hi = end
		}
		loads = append(loads, p)
	}
	if len(loads) == 0 {
		return Image{}, ErrNoLoadSegments
	}
	if f.Entry < lo || f.Entry >= hi {
		return Image{}, fmt.Errorf("felf: entry %#x not in [%#x, %#x): %w", f.Entry, lo, hi, ErrEntryOutOfRange)
	}

	if hi-lo > MaxImageSize {
		return Image{}, fmt.Errorf("felf: image spans %#x bytes, limit %#x: %w", hi-lo, uint64(MaxImageSize), ErrImageTooLarge)
	}

	body := make([]byte, hi-lo)
	for _, p := range loads {
		off := p.Vaddr - lo
		dst := body[off : off+p.Filesz]
		n, err := p.ReadAt(dst, 0)
		if err != nil && !(errors.Is(err, io.EOF) && n == len(dst)) {
			return Image{}, fmt.Errorf("felf: segment at %#x: %w", p.Vaddr, err)
		}
	}

	return Image{
		Header: Header{Entry: uint32(f.Entry), Base: uint32(lo)},
		Body:   body,
	}, nil
}

// PackELF converts an ELF into an encoded FELF container.
func PackELF(r io.ReaderAt) ([]byte, error) {
	img, err := FromELF(r)
	if err != nil {
		return nil, err
	}
	return Encode(img.Header, img.Body), nil
}

// IsELF reports whether b starts with the ELF magic.
func IsELF(b []byte) bool {
	return len(b) >= len(elf.ELFMAG) && string(b[:len(elf.ELFMAG)]) == elf.ELFMAG
}
