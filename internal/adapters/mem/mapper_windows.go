//go:build windows

package mem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/bft-labs/felfship/internal/domain"
)

// Mapper implements ports.Mapper with VirtualAlloc.
type Mapper struct{}

// NewMapper creates a Mapper.
func NewMapper() *Mapper { return &Mapper{} }

// MapFixed commits size bytes of PAGE_EXECUTE_READWRITE memory exactly at addr.
func (*Mapper) MapFixed(addr, size uintptr) (domain.Region, error) {
	got, err := windows.VirtualAlloc(addr, size, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_EXECUTE_READWRITE)
	if err != nil {
		return domain.Region{}, fmt.Errorf("VirtualAlloc %#x+%#x: %w", addr, size, err)
	}
	if got != addr {
		_ = windows.VirtualFree(got, 0, windows.MEM_RELEASE)
		return domain.Region{}, &domain.MismatchError{Want: addr, Got: got}
	}
	return domain.Region{Base: got, Mem: unsafe.Slice((*byte)(unsafe.Pointer(got)), size)}, nil
}

// Unmap releases a region returned by MapFixed.
func (*Mapper) Unmap(r domain.Region) error {
	if len(r.Mem) == 0 {
		return nil
	}
	return windows.VirtualFree(r.Base, 0, windows.MEM_RELEASE)
}
