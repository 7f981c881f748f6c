package loader

import "github.com/bft-labs/felfship/pkg/felf"

// Granularity is the alignment applied to both ends of the mapped region.
const Granularity = 64 << 10

// Plan is the address layout of one image. All addresses are absolute and
// kept in 64 bits so that base+len never wraps.
type Plan struct {
	Base        uint64
	End         uint64
	AlignedBase uint64
	AlignedEnd  uint64
}

// AlignDown rounds v down to a multiple of Granularity.
func AlignDown(v uint64) uint64 { return v &^ (Granularity - 1) }

// AlignUp rounds v up to a multiple of Granularity.
func AlignUp(v uint64) uint64 { return (v + Granularity - 1) &^ (Granularity - 1) }

// PlanFor lays out a body of bodyLen bytes loaded at base. An empty body
// still gets one granule so the entry address is mapped.
func PlanFor(base uint32, bodyLen int) Plan {
	p := Plan{
		Base: uint64(base),
		End:  uint64(base) + uint64(bodyLen),
	}
	p.AlignedBase = AlignDown(p.Base)
	p.AlignedEnd = AlignUp(p.End)
	if p.AlignedEnd == p.AlignedBase {
		p.AlignedEnd += Granularity
	}
	return p
}

// PlanImage lays out a decoded container.
func PlanImage(img felf.Image) Plan {
	return PlanFor(img.Base, len(img.Body))
}

// Size returns the number of bytes to map.
func (p Plan) Size() uint64 { return p.AlignedEnd - p.AlignedBase }

// Lead returns the offset of Base inside the aligned region.
func (p Plan) Lead() uint64 { return p.Base - p.AlignedBase }
