package ports

import "context"

// PayloadSource supplies the FELF container served to each worker.
type PayloadSource interface {
	// Payload returns the current encoded container. Callers must not modify it.
	Payload(ctx context.Context) ([]byte, error)
}
