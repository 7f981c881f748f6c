package transport

import (
	"errors"
	"net"
)

// Handle is an OS-level socket descriptor handed to loaded code. Keep must
// stay reachable for as long as the descriptor is in use.
type Handle struct {
	FD   uintptr
	Keep interface{}
}

var errNoSyscallConn = errors.New("transport: connection has no OS descriptor")

// HandleOf returns the OS descriptor backing conn.
func HandleOf(conn net.Conn) (Handle, error) {
	return handleOf(conn)
}
