//go:build !windows && !(linux && (amd64 || arm64))

package dispatch

import (
	"github.com/bft-labs/felfship/internal/domain"
	"github.com/bft-labs/felfship/internal/ports"
)

func (d *Dispatcher) prepare() (ports.Jump, error) {
	return nil, domain.ErrUnsupportedPlatform
}
