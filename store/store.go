// Package store archives run artifacts (the pipeline log, the run
// report) to a configured backend.
package store

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Client writes artifacts under a key in the archive backend.
type Client interface {
	// Put stores the contents of r under key.
	Put(ctx context.Context, key string, r io.Reader) error
}

// Stub is an in-memory Client for tests. It records every Put.
type Stub struct {
	mu      sync.Mutex
	Objects map[string][]byte
	// Err, when set, is returned from every Put.
	Err error
}

// NewStub creates an empty recording stub.
func NewStub() *Stub {
	return &Stub{Objects: make(map[string][]byte)}
}

func (s *Stub) Put(_ context.Context, key string, r io.Reader) error {
	if s.Err != nil {
		return s.Err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects[key] = data
	return nil
}
