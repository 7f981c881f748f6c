package app

import (
	"context"
	"fmt"
	"net"
	"runtime"

	"github.com/bft-labs/felfship/internal/domain"
	"github.com/bft-labs/felfship/internal/loader"
	"github.com/bft-labs/felfship/internal/ports"
	"github.com/bft-labs/felfship/internal/transport"
	"github.com/bft-labs/felfship/pkg/felf"
)

// HandleFunc extracts the OS descriptor handed to loaded code.
type HandleFunc func(net.Conn) (transport.Handle, error)

// WorkerConfig holds the settings of one stager run.
type WorkerConfig struct {
	// ControllerAddr is the host:port the worker dials.
	ControllerAddr string

	// MaxPayload caps the declared payload length. Zero means no cap.
	MaxPayload uint32
}

// WorkerOption configures optional behavior of a Worker.
type WorkerOption func(*Worker)

// WithHandleFunc replaces transport.HandleOf.
func WithHandleFunc(fn HandleFunc) WorkerOption {
	return func(w *Worker) { w.handleOf = fn }
}

// WithStageObserver registers an observer for stage changes.
func WithStageObserver(o StageObserver) WorkerOption {
	return func(w *Worker) { w.observer = o }
}

// Worker receives one FELF payload from the controller, loads it at the
// address it names and transfers control to its entry point.
type Worker struct {
	cfg        WorkerConfig
	dialer     ports.Dialer
	mapper     ports.Mapper
	dispatcher ports.Dispatcher
	logger     ports.Logger
	handleOf   HandleFunc
	observer   StageObserver
}

// NewWorker creates a Worker.
func NewWorker(cfg WorkerConfig, dialer ports.Dialer, mapper ports.Mapper, dispatcher ports.Dispatcher, logger ports.Logger, opts ...WorkerOption) *Worker {
	w := &Worker{
		cfg:        cfg,
		dialer:     dialer,
		mapper:     mapper,
		dispatcher: dispatcher,
		logger:     logger,
		handleOf:   transport.HandleOf,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run executes the pipeline once. It returns a *domain.TransportError,
// *domain.ProtocolError or *domain.ResourceError on failure, and nil only if
// the loaded code returns. Every failure, including a dispatcher that
// cannot prepare the jump, ends in StageAborted with any mapped region
// released. ctx bounds the dial; reads never time out.
//
// The connection is not closed: it belongs to the loaded code.
func (w *Worker) Run(ctx context.Context) error {
	p := NewPipeline(w.logger, w.observer)

	conn, err := w.dialer.DialContext(ctx, "tcp", w.cfg.ControllerAddr)
	if err != nil {
		return p.Abort(&domain.TransportError{
			Stage: domain.StageConnecting,
			Err:   fmt.Errorf("%w: %s: %w", domain.ErrConnect, w.cfg.ControllerAddr, err),
		})
	}
	w.logger.Info("connected to controller", ports.String("addr", w.cfg.ControllerAddr))

	p.Advance(domain.StageAwaitingLength, "connected")
	rd := transport.Reader{MaxPayload: w.cfg.MaxPayload}
	n, err := transport.ReadLength(conn)
	if err == nil {
		err = rd.CheckLength(n)
	}
	if err != nil {
		return p.Abort(&domain.TransportError{Stage: domain.StageAwaitingLength, Err: err})
	}

	p.Advance(domain.StageReadingPayload, fmt.Sprintf("declared %d bytes", n))
	buf, err := transport.ReadExact(conn, n)
	if err != nil {
		return p.Abort(&domain.TransportError{Stage: domain.StageReadingPayload, Err: err})
	}

	p.Advance(domain.StageValidating, "payload received")
	img, err := felf.Decode(buf)
	if err != nil {
		return p.Abort(&domain.ProtocolError{Stage: domain.StageValidating, Err: err})
	}
	w.logger.Info("payload validated",
		ports.Int("bytes", len(buf)),
		ports.Addr("entry", uintptr(img.Entry)),
		ports.Addr("base", uintptr(img.Base)),
	)

	p.Advance(domain.StageAllocating, "header valid")
	plan := loader.PlanImage(img)
	ld := loader.New(w.mapper, w.logger)
	region, err := ld.Allocate(plan)
	if err != nil {
		return p.Abort(&domain.ResourceError{Stage: domain.StageAllocating, Err: err})
	}

	p.Advance(domain.StageCopying, "region mapped")
	if err := loader.Copy(region, plan, img.Body); err != nil {
		w.release(region)
		return p.Abort(&domain.ResourceError{Stage: domain.StageCopying, Err: err})
	}

	jump, err := w.dispatcher.Prepare()
	if err != nil {
		w.release(region)
		return p.Abort(&domain.ResourceError{Stage: domain.StageCopying, Err: err})
	}

	h, err := w.handleOf(conn)
	if err != nil {
		w.release(region)
		return p.Abort(&domain.TransportError{Stage: domain.StageCopying, Err: err})
	}

	p.Advance(domain.StageDispatched, "image in place")
	jump(uintptr(img.Entry), h.FD)
	runtime.KeepAlive(h.Keep)
	runtime.KeepAlive(conn)

	w.logger.Info("loaded code returned")
	return nil
}

func (w *Worker) release(r domain.Region) {
	if err := w.mapper.Unmap(r); err != nil {
		w.logger.Warn("release region", ports.Err(err))
	}
}
