package app

import (
	"fmt"
	"sync"

	"github.com/bft-labs/felfship/internal/domain"
	"github.com/bft-labs/felfship/internal/ports"
)

// StageObserver is called when the worker pipeline changes stage.
type StageObserver interface {
	OnStageChange(previous, current domain.Stage, reason string)
}

// Pipeline tracks the stage of one worker run. Stages only move forward;
// once Dispatched or Aborted no further transition is accepted.
type Pipeline struct {
	mu       sync.RWMutex
	stage    domain.Stage
	logger   ports.Logger
	observer StageObserver
}

// NewPipeline creates a pipeline in StageConnecting.
func NewPipeline(logger ports.Logger, observer StageObserver) *Pipeline {
	return &Pipeline{
		stage:    domain.StageConnecting,
		logger:   logger,
		observer: observer,
	}
}

// Stage returns the current stage.
func (p *Pipeline) Stage() domain.Stage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stage
}

// TransitionTo moves the pipeline to next. It returns
// domain.ErrInvalidTransition and leaves the stage unchanged if next is not
// the immediate successor of the current stage or StageAborted.
func (p *Pipeline) TransitionTo(next domain.Stage, reason string) error {
	p.mu.Lock()
	prev := p.stage
	if !prev.CanTransition(next) {
		p.mu.Unlock()
		return domain.ErrInvalidTransition
	}
	p.stage = next
	p.mu.Unlock()

	if p.observer != nil {
		p.observer.OnStageChange(prev, next, reason)
	}

	p.logger.Debug("stage transition",
		ports.String("from", prev.String()),
		ports.String("to", next.String()),
		ports.String("reason", reason),
	)
	return nil
}

// Advance is TransitionTo for forward steps the caller knows to be valid.
// It panics if the transition is rejected.
func (p *Pipeline) Advance(next domain.Stage, reason string) {
	if err := p.TransitionTo(next, reason); err != nil {
		panic(fmt.Sprintf("pipeline: %s -> %s: %v", p.Stage(), next, err))
	}
}

// Abort moves the pipeline to StageAborted and returns err. The stage that
// failed is the one current when Abort is called.
func (p *Pipeline) Abort(err error) error {
	_ = p.TransitionTo(domain.StageAborted, err.Error())
	return err
}
