package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"syscall"
	"testing"
	"time"
)

// mockSpawner records spawn ids.
type mockSpawner struct {
	mu      sync.Mutex
	ids     []string
	err     error
	spawned chan string
}

func newMockSpawner() *mockSpawner {
	return &mockSpawner{spawned: make(chan string, 16)}
}

func (s *mockSpawner) Spawn(id string) error {
	s.mu.Lock()
	s.ids = append(s.ids, id)
	err := s.err
	s.mu.Unlock()
	s.spawned <- id
	return err
}

func (s *mockSpawner) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func startListener(t *testing.T, l *Listener) (string, func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Serve(ctx, ln) }()

	return ln.Addr().String(), func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Serve() = %v, want nil", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("Serve did not return after cancel")
		}
	}
}

func waitSpawn(t *testing.T, s *mockSpawner) string {
	t.Helper()
	select {
	case id := <-s.spawned:
		return id
	case <-time.After(5 * time.Second):
		t.Fatal("worker was not spawned")
		return ""
	}
}

func TestListener_ScenarioE_TwoConnections(t *testing.T) {
	spawner := newMockSpawner()
	addr, stop := startListener(t, NewListener(spawner, mockLogger{}))
	defer stop()

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := net.Dial("tcp", addr)
			if err != nil {
				t.Error(err)
				return
			}
			c.Close()
		}()
	}
	wg.Wait()

	a, b := waitSpawn(t, spawner), waitSpawn(t, spawner)
	if a == b || a == "" || b == "" {
		t.Errorf("spawn ids = %q, %q; want two distinct ids", a, b)
	}

	// Still accepting.
	c, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatal(err)
	}
	c.Close()
	waitSpawn(t, spawner)
}

func TestListener_ClosesSignalConnection(t *testing.T) {
	spawner := newMockSpawner()
	addr, stop := startListener(t, NewListener(spawner, mockLogger{}))
	defer stop()

	c, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	waitSpawn(t, spawner)

	c.SetReadDeadline(time.Now().Add(5 * time.Second))
	n, err := c.Read(make([]byte, 1))
	if n != 0 || err == nil {
		t.Fatalf("Read = %d, %v; want the listener to close without sending", n, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		t.Fatal("signal connection was not closed")
	}
}

func TestListener_SpawnFailureContinues(t *testing.T) {
	spawner := newMockSpawner()
	spawner.setErr(errors.New("exec format error"))
	addr, stop := startListener(t, NewListener(spawner, mockLogger{}))
	defer stop()

	for i := 0; i < 2; i++ {
		c, err := net.Dial("tcp", addr)
		if err != nil {
			t.Fatal(err)
		}
		c.Close()
		waitSpawn(t, spawner)
	}
}

func TestIsTemporary(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{fmt.Errorf("accept: %w", syscall.EMFILE), true},
		{fmt.Errorf("accept: %w", syscall.ECONNABORTED), true},
		{&net.OpError{Op: "accept", Err: timeoutErr{}}, true},
		{net.ErrClosed, false},
		{errors.New("other"), false},
	}
	for _, tt := range tests {
		if got := isTemporary(tt.err); got != tt.want {
			t.Errorf("isTemporary(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }
