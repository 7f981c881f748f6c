package dispatch

import "github.com/bft-labs/felfship/internal/ports"

// DefaultStackSize is the stack given to loaded code when none is configured.
const DefaultStackSize = 1 << 20

// Dispatcher implements ports.Dispatcher.
type Dispatcher struct {
	stackSize uintptr
	logger    ports.Logger
}

// New creates a Dispatcher. A stackSize of zero selects DefaultStackSize.
func New(stackSize int, logger ports.Logger) *Dispatcher {
	if stackSize <= 0 {
		stackSize = DefaultStackSize
	}
	return &Dispatcher{stackSize: uintptr(stackSize), logger: logger}
}

// Prepare checks the platform and sets up the stack for loaded code. The
// returned Jump does not return unless the callee does.
func (d *Dispatcher) Prepare() (ports.Jump, error) {
	jump, err := d.prepare()
	if err != nil {
		return nil, err
	}
	return func(entry, arg uintptr) {
		d.logger.Info("transferring control",
			ports.Addr("entry", entry),
			ports.Uint64("arg", uint64(arg)),
		)
		jump(entry, arg)
	}, nil
}
