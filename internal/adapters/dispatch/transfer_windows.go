//go:build windows

package dispatch

import (
	"runtime"
	"runtime/debug"
	"syscall"

	"github.com/bft-labs/felfship/internal/ports"
)

// prepare has nothing to set up: SyscallN already runs the callee on the
// system stack with the native calling convention.
func (d *Dispatcher) prepare() (ports.Jump, error) {
	return func(entry, arg uintptr) {
		runtime.LockOSThread()
		debug.SetGCPercent(-1)

		syscall.SyscallN(entry, arg)
	}, nil
}
