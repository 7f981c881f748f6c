//go:build linux && (amd64 || arm64)

package dispatch

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/bft-labs/felfship/internal/ports"
)

// callEntry switches to stack and calls entry(arg). Implemented in assembly.
func callEntry(entry, arg, stack uintptr)

func (d *Dispatcher) prepare() (ports.Jump, error) {
	stack, err := unix.Mmap(-1, 0, int(d.stackSize),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_STACK)
	if err != nil {
		return nil, fmt.Errorf("dispatch: map stack: %w", err)
	}
	top := uintptr(unsafe.Pointer(&stack[0])) + d.stackSize

	return func(entry, arg uintptr) {
		runtime.LockOSThread()
		debug.SetGCPercent(-1)

		callEntry(entry, arg, top)
	}, nil
}
