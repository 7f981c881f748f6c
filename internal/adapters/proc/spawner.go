// Package proc launches worker processes for the listener.
package proc

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/bft-labs/felfship/internal/ports"
)

// WorkerIDEnv carries the spawn id to the child.
const WorkerIDEnv = "FELFSHIP_WORKER_ID"

// Spawner implements ports.Spawner by starting a fixed executable with no
// arguments. Children are reaped in the background but never supervised.
type Spawner struct {
	path   string
	logger ports.Logger
}

// NewSpawner creates a Spawner for the executable at path.
func NewSpawner(path string, logger ports.Logger) *Spawner {
	return &Spawner{path: path, logger: logger}
}

// Spawn starts one worker tagged with id.
func (s *Spawner) Spawn(id string) error {
	cmd := exec.Command(s.path)
	cmd.Env = append(os.Environ(), WorkerIDEnv+"="+id)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start worker %s: %w", s.path, err)
	}

	pid := cmd.Process.Pid
	go func() {
		err := cmd.Wait()
		fields := []ports.Field{ports.String("worker_id", id), ports.Int("pid", pid)}
		if err != nil {
			fields = append(fields, ports.Err(err))
		}
		s.logger.Debug("worker exited", fields...)
	}()
	return nil
}
