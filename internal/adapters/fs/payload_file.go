// Package fs provides file-backed adapters.
package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/felfship/internal/ports"
	"github.com/bft-labs/felfship/pkg/felf"
)

const reloadDebounce = 100 * time.Millisecond

var errNoPayload = errors.New("fs: no payload loaded")

// PayloadFile implements ports.PayloadSource from a file on disk. The file
// may hold a FELF container or an ELF executable, which is packed on load.
type PayloadFile struct {
	path   string
	logger ports.Logger

	mu       sync.RWMutex
	payload  []byte
	header   felf.Header
	debounce *time.Timer
}

// NewPayloadFile creates a PayloadFile for path. Call Load before serving.
func NewPayloadFile(path string, logger ports.Logger) *PayloadFile {
	return &PayloadFile{path: path, logger: logger}
}

// ReadPayload reads path and returns a validated FELF container.
func ReadPayload(path string) ([]byte, felf.Header, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, felf.Header{}, err
	}
	if felf.IsELF(b) {
		packed, err := felf.PackELF(bytes.NewReader(b))
		if err != nil {
			return nil, felf.Header{}, fmt.Errorf("pack %s: %w", path, err)
		}
		b = packed
	}
	h, _, err := felf.Parse(b)
	if err != nil {
		return nil, felf.Header{}, fmt.Errorf("validate %s: %w", path, err)
	}
	return b, h, nil
}

// Load reads the file and replaces the served payload. On failure the
// previous payload is kept.
func (p *PayloadFile) Load() error {
	b, h, err := ReadPayload(p.path)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.payload, p.header = b, h
	p.mu.Unlock()

	p.logger.Info("payload loaded",
		ports.String("path", p.path),
		ports.Int("bytes", len(b)),
		ports.Addr("entry", uintptr(h.Entry)),
		ports.Addr("base", uintptr(h.Base)),
	)
	return nil
}

// Payload returns the current container.
func (p *PayloadFile) Payload(ctx context.Context) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.payload == nil {
		return nil, errNoPayload
	}
	return p.payload, nil
}

// Header returns the header of the current container.
func (p *PayloadFile) Header() felf.Header {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.header
}

// Watch reloads the payload whenever the file is written or replaced. It
// blocks until ctx is cancelled. The parent directory is watched so that
// editors replacing the file by rename are seen.
func (p *PayloadFile) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("payload watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(p.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("payload watcher: watch %s: %w", dir, err)
	}
	name := filepath.Base(p.path)

	for {
		select {
		case <-ctx.Done():
			p.stopDebounce()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debounceReload(reloadDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.logger.Warn("payload watcher error", ports.Err(err))
		}
	}
}

func (p *PayloadFile) debounceReload(delay time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(delay, func() {
		if err := p.Load(); err != nil {
			p.logger.Warn("payload reload failed, keeping previous", ports.Err(err))
		}
	})
}

func (p *PayloadFile) stopDebounce() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
}
