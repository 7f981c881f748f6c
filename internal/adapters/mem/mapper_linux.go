//go:build linux

package mem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/bft-labs/felfship/internal/domain"
)

// Mapper implements ports.Mapper with mmap.
type Mapper struct{}

// NewMapper creates a Mapper.
func NewMapper() *Mapper { return &Mapper{} }

// MapFixed maps size bytes of RWX anonymous memory exactly at addr.
func (*Mapper) MapFixed(addr, size uintptr) (domain.Region, error) {
	const (
		prot  = unix.PROT_READ | unix.PROT_WRITE | unix.PROT_EXEC
		flags = unix.MAP_PRIVATE | unix.MAP_ANONYMOUS | unix.MAP_FIXED_NOREPLACE
	)
	ptr, err := unix.MmapPtr(-1, 0, unsafe.Pointer(addr), size, prot, flags)
	if err != nil {
		return domain.Region{}, fmt.Errorf("mmap %#x+%#x: %w", addr, size, err)
	}
	got := uintptr(ptr)
	if got != addr {
		_ = unix.MunmapPtr(ptr, size)
		return domain.Region{}, &domain.MismatchError{Want: addr, Got: got}
	}
	return domain.Region{Base: got, Mem: unsafe.Slice((*byte)(ptr), size)}, nil
}

// Unmap releases a region returned by MapFixed.
func (*Mapper) Unmap(r domain.Region) error {
	if len(r.Mem) == 0 {
		return nil
	}
	return unix.MunmapPtr(unsafe.Pointer(&r.Mem[0]), r.Len())
}
