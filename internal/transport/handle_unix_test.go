//go:build unix

package transport

import (
	"net"
	"os"
	"testing"

	"golang.org/x/sys/unix"
)

func TestHandleOf_Blocking(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		c, err := ln.Accept()
		if err == nil {
			accepted <- c
		}
		close(accepted)
	}()

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if peer := <-accepted; peer != nil {
		defer peer.Close()
	}

	h, err := HandleOf(conn)
	if err != nil {
		t.Fatalf("HandleOf: %v", err)
	}
	defer h.Keep.(*os.File).Close()

	flags, err := unix.FcntlInt(h.FD, unix.F_GETFL, 0)
	if err != nil {
		t.Fatalf("fcntl: %v", err)
	}
	if flags&unix.O_NONBLOCK != 0 {
		t.Error("descriptor is still non-blocking")
	}
}

func TestHandleOf_NotASocket(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()
	if _, err := HandleOf(a); err == nil {
		t.Fatal("HandleOf(net.Pipe) succeeded")
	}
}
