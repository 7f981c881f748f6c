//go:build windows

package transport

import (
	"net"
	"syscall"
)

// handleOf returns the SOCKET itself; Windows sockets cannot be duplicated
// through os.File.
func handleOf(conn net.Conn) (Handle, error) {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		return Handle{}, errNoSyscallConn
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return Handle{}, err
	}
	var fd uintptr
	if err := raw.Control(func(s uintptr) { fd = s }); err != nil {
		return Handle{}, err
	}
	return Handle{FD: fd, Keep: conn}, nil
}
