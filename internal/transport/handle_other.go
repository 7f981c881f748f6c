//go:build !unix && !windows

package transport

import (
	"net"

	"github.com/bft-labs/felfship/internal/domain"
)

func handleOf(conn net.Conn) (Handle, error) {
	return Handle{}, domain.ErrUnsupportedPlatform
}
