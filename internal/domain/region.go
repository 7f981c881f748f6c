package domain

// Region is a granted executable mapping spanning [Base, Base+len(Mem)).
// Mem is the mapping viewed as a byte slice; it stays valid until unmapped.
type Region struct {
	Base uintptr
	Mem  []byte
}

// End returns the first address past the region.
func (r Region) End() uintptr { return r.Base + uintptr(len(r.Mem)) }

// Len returns the size of the region in bytes.
func (r Region) Len() uintptr { return uintptr(len(r.Mem)) }
