package ports

// Spawner launches a worker process. Implementations do not supervise the child.
type Spawner interface {
	// Spawn starts one worker tagged with id and returns once it is running.
	Spawn(id string) error
}
