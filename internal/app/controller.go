package app

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"

	"github.com/bft-labs/felfship/internal/ports"
	"github.com/bft-labs/felfship/internal/transport"
)

// Controller serves the current payload to every worker that connects and
// relays whatever the loaded code sends back to out.
type Controller struct {
	source ports.PayloadSource
	logger ports.Logger

	outMu sync.Mutex
	out   io.Writer
}

// NewController creates a Controller. Output from all sessions is written
// to out, one read at a time.
func NewController(source ports.PayloadSource, out io.Writer, logger ports.Logger) *Controller {
	return &Controller{source: source, out: out, logger: logger}
}

// Serve accepts workers on ln until ctx is cancelled. Each session runs in
// its own goroutine; Serve returns nil after ctx is cancelled and every
// session has ended.
func (c *Controller) Serve(ctx context.Context, ln net.Listener) error {
	var wg sync.WaitGroup
	var conns sync.Map

	stop := context.AfterFunc(ctx, func() {
		ln.Close()
		conns.Range(func(k, _ any) bool {
			k.(net.Conn).Close()
			return true
		})
	})
	defer stop()

	c.logger.Info("serving payload", ports.String("addr", ln.Addr().String()))

	var err error
	for {
		var conn net.Conn
		conn, err = ln.Accept()
		if err != nil {
			break
		}
		conns.Store(conn, struct{}{})
		if ctx.Err() != nil {
			conn.Close()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conns.Delete(conn)
			c.session(ctx, conn)
		}()
	}

	wg.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (c *Controller) session(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	peer := conn.RemoteAddr().String()

	payload, err := c.source.Payload(ctx)
	if err != nil {
		c.logger.Error("no payload to serve", ports.String("peer", peer), ports.Err(err))
		return
	}
	if err := transport.WritePayload(conn, payload); err != nil {
		c.logger.Error("send payload", ports.String("peer", peer), ports.Err(err))
		return
	}
	c.logger.Info("served payload",
		ports.String("peer", peer),
		ports.Int("bytes", len(payload)),
	)

	n, err := c.relay(conn)
	if err != nil && !errors.Is(err, net.ErrClosed) {
		c.logger.Warn("relay ended", ports.String("peer", peer), ports.Err(err))
	}
	c.logger.Info("session closed",
		ports.String("peer", peer),
		ports.Int("received", int(n)),
	)
}

// relay copies conn to out until EOF.
func (c *Controller) relay(conn net.Conn) (int64, error) {
	var total int64
	buf := make([]byte, 1024)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			c.outMu.Lock()
			_, werr := c.out.Write(buf[:n])
			c.outMu.Unlock()
			total += int64(n)
			if werr != nil {
				return total, werr
			}
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}
