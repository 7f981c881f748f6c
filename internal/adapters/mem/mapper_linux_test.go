//go:build linux

package mem

import (
	"errors"
	"syscall"
	"testing"

	"github.com/bft-labs/felfship/internal/domain"
)

// testAddr is far from the Go heap, the default mmap area and the
// non-PIE text segment.
const testAddr uintptr = 0x30000000

func mapOrSkip(t *testing.T, m *Mapper, addr, size uintptr) domain.Region {
	t.Helper()
	r, err := m.MapFixed(addr, size)
	if errors.Is(err, domain.ErrAddressMismatch) {
		t.Skipf("kernel does not honour MAP_FIXED_NOREPLACE: %v", err)
	}
	if errors.Is(err, syscall.EEXIST) || errors.Is(err, syscall.EPERM) {
		t.Skipf("test address unavailable: %v", err)
	}
	if err != nil {
		t.Fatalf("MapFixed: %v", err)
	}
	return r
}

func TestMapper_RoundTrip(t *testing.T) {
	m := NewMapper()
	r := mapOrSkip(t, m, testAddr, 0x10000)
	defer m.Unmap(r)

	if r.Base != testAddr || r.Len() != 0x10000 {
		t.Fatalf("region = [%#x, %#x)", r.Base, r.End())
	}
	code := []byte{0x90, 0x90, 0x90, 0xC3}
	copy(r.Mem[0x1234:], code)
	for i, b := range code {
		if r.Mem[0x1234+i] != b {
			t.Fatalf("byte %d = %#x, want %#x", i, r.Mem[0x1234+i], b)
		}
	}
}

func TestMapper_OccupiedRange(t *testing.T) {
	m := NewMapper()
	r := mapOrSkip(t, m, testAddr, 0x10000)
	defer m.Unmap(r)

	_, err := m.MapFixed(testAddr, 0x10000)
	if err == nil {
		t.Fatal("second MapFixed over an occupied range succeeded")
	}
	if !errors.Is(err, syscall.EEXIST) && !errors.Is(err, domain.ErrAddressMismatch) {
		t.Errorf("error = %v, want EEXIST or mismatch", err)
	}
}
