//go:build !linux && !windows

package mem

import "github.com/bft-labs/felfship/internal/domain"

// Mapper reports ErrUnsupportedPlatform; fixed RWX mapping is only
// implemented for linux and windows.
type Mapper struct{}

// NewMapper creates a Mapper.
func NewMapper() *Mapper { return &Mapper{} }

// MapFixed always fails on this platform.
func (*Mapper) MapFixed(addr, size uintptr) (domain.Region, error) {
	return domain.Region{}, domain.ErrUnsupportedPlatform
}

// Unmap is a no-op on this platform.
func (*Mapper) Unmap(domain.Region) error { return nil }
