package ports

import "github.com/bft-labs/felfship/internal/domain"

// Mapper obtains read, write and execute memory at a caller-chosen address.
type Mapper interface {
	// MapFixed maps size bytes starting exactly at addr. An implementation
	// that receives any other address from the OS must release it and fail
	// with an error matching domain.ErrAddressMismatch.
	MapFixed(addr, size uintptr) (domain.Region, error)

	// Unmap releases a region returned by MapFixed.
	Unmap(r domain.Region) error
}

// Jump calls the function at entry with arg as its only argument. It
// returns only if the callee returns.
type Jump func(entry, arg uintptr)

// Dispatcher transfers control to loaded code.
type Dispatcher interface {
	// Prepare acquires everything the jump needs. When it fails nothing has
	// been executed and the caller may still clean up.
	Prepare() (Jump, error)
}
