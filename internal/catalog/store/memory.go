package store

import (
	"context"
	"sync"

	"migflow/pkg/platform/sentinel"
)

// Memory is the in-process catalog store. Suitable for a single instance;
// use Redis when several instances should share one fetched catalog.
type Memory struct {
	mu   sync.RWMutex
	snap *Snapshot
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snap == nil {
		return nil, sentinel.ErrNotFound
	}
	snap := *m.snap
	return &snap, nil
}

func (m *Memory) Save(_ context.Context, snap *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *snap
	m.snap = &copied
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = nil
	return nil
}
