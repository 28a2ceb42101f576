package queue

import "context"

// MemoryDriver is a channel-backed queue driver. It is the default and is
// suitable for development and tests. Jobs do not survive a restart.
type MemoryDriver struct {
	jobs chan []byte
}

// NewMemoryDriver creates an in-memory driver with a buffer of 1024 jobs.
func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{jobs: make(chan []byte, 1024)}
}

func (d *MemoryDriver) Push(payload []byte) error {
	d.jobs <- payload
	return nil
}

func (d *MemoryDriver) Pop(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case raw := <-d.jobs:
		return raw, nil
	}
}
