package app

import (
	"context"
	"errors"
	"net"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/felfship/internal/ports"
)

// Listener spawns one worker process per accepted connection. The accepted
// connection is only a spawn signal: nothing is read from or written to it.
type Listener struct {
	spawner ports.Spawner
	logger  ports.Logger
	newID   func() string

	backoffInitial time.Duration
	backoffMax     time.Duration
}

// NewListener creates a Listener that starts workers through spawner.
func NewListener(spawner ports.Spawner, logger ports.Logger) *Listener {
	return &Listener{
		spawner:        spawner,
		logger:         logger,
		newID:          uuid.NewString,
		backoffInitial: DefaultBackoffInitial,
		backoffMax:     DefaultBackoffMax,
	}
}

// Serve accepts connections on ln until ctx is cancelled, which closes ln
// and makes Serve return nil. A spawn failure is logged and the loop
// continues; temporary accept errors are retried with backoff.
func (l *Listener) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	l.logger.Info("listening", ports.String("addr", ln.Addr().String()))

	bo := newBackoff(l.backoffInitial, l.backoffMax)
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if !isTemporary(err) {
				return err
			}
			l.logger.Warn("accept failed, backing off",
				ports.Err(err),
				ports.Duration("backoff", bo.Current()),
			)
			if !bo.Sleep(ctx) {
				return nil
			}
			continue
		}
		bo.Reset()
		l.handle(conn)
	}
}

func (l *Listener) handle(conn net.Conn) {
	defer conn.Close()

	id := l.newID()
	peer := conn.RemoteAddr().String()
	if err := l.spawner.Spawn(id); err != nil {
		l.logger.Error("spawn worker failed",
			ports.String("worker_id", id),
			ports.String("peer", peer),
			ports.Err(err),
		)
		return
	}
	l.logger.Info("spawned worker",
		ports.String("worker_id", id),
		ports.String("peer", peer),
	)
}

// isTemporary reports whether an accept error is worth retrying.
func isTemporary(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	for _, errno := range []syscall.Errno{syscall.ECONNABORTED, syscall.EMFILE, syscall.ENFILE, syscall.ENOBUFS, syscall.ENOMEM} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
