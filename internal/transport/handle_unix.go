//go:build unix

package transport

import (
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

type filer interface {
	File() (*os.File, error)
}

// handleOf duplicates the socket and switches the duplicate to blocking
// mode; loaded code does not cooperate with the Go netpoller.
func handleOf(conn net.Conn) (Handle, error) {
	fc, ok := conn.(filer)
	if !ok {
		return Handle{}, errNoSyscallConn
	}
	f, err := fc.File()
	if err != nil {
		return Handle{}, fmt.Errorf("transport: dup socket: %w", err)
	}
	fd := f.Fd()
	if err := unix.SetNonblock(int(fd), false); err != nil {
		f.Close()
		return Handle{}, fmt.Errorf("transport: set blocking: %w", err)
	}
	return Handle{FD: fd, Keep: f}, nil
}
