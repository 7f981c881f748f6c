package loader

import (
	"fmt"

	"github.com/bft-labs/felfship/internal/domain"
	"github.com/bft-labs/felfship/internal/ports"
)

const maxUintptr = uint64(^uintptr(0))

// Loader places images into fixed-address executable memory.
type Loader struct {
	mapper ports.Mapper
	logger ports.Logger
}

// New creates a Loader backed by mapper.
func New(mapper ports.Mapper, logger ports.Logger) *Loader {
	return &Loader{mapper: mapper, logger: logger}
}

// Allocate maps the aligned region of p read, write and execute. The region
// must be granted exactly at p.AlignedBase; any other address is released
// and reported as an allocation failure. There is no relocation fallback.
func (l *Loader) Allocate(p Plan) (domain.Region, error) {
	if p.AlignedEnd-1 > maxUintptr {
		return domain.Region{}, fmt.Errorf("%w: region [%#x, %#x) exceeds address space", domain.ErrAllocationFailed, p.AlignedBase, p.AlignedEnd)
	}
	want := uintptr(p.AlignedBase)

	l.logger.Debug("mapping region",
		ports.Addr("aligned_base", want),
		ports.Addr("aligned_end", uintptr(p.AlignedEnd)),
		ports.Uint64("size", p.Size()),
	)

	r, err := l.mapper.MapFixed(want, uintptr(p.Size()))
	if err != nil {
		return domain.Region{}, fmt.Errorf("%w: %w", domain.ErrAllocationFailed, err)
	}
	if r.Base != want || r.Len() != uintptr(p.Size()) {
		got := r.Base
		if uerr := l.mapper.Unmap(r); uerr != nil {
			l.logger.Warn("release mismatched region", ports.Err(uerr))
		}
		return domain.Region{}, &domain.MismatchError{Want: want, Got: got}
	}
	return r, nil
}

// Copy writes body at p.Base inside region. Bytes before Base and after the
// body are left as the mapper provided them.
func Copy(r domain.Region, p Plan, body []byte) error {
	if uint64(r.Base) != p.AlignedBase || uint64(r.Len()) != p.Size() {
		return fmt.Errorf("loader: region [%#x, %#x) does not match plan [%#x, %#x)", r.Base, r.End(), p.AlignedBase, p.AlignedEnd)
	}
	if p.Lead()+uint64(len(body)) > p.Size() {
		return fmt.Errorf("loader: body of %d bytes overruns region", len(body))
	}
	copy(r.Mem[p.Lead():], body)
	return nil
}
