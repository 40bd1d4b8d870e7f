package testutil

import (
	"context"
	"sync"

	"github.com/roach88/knifehit/internal/economy"
	"github.com/roach88/knifehit/internal/ir"
)

// MemoryCheckpointer records checkpoints in memory.
//
// Set SaveErr or RunErr to make the corresponding write fail.
type MemoryCheckpointer struct {
	mu       sync.Mutex
	profiles []economy.Record
	runs     []ir.RunSummary

	SaveErr error
	RunErr  error
}

// NewMemoryCheckpointer creates an empty checkpointer.
func NewMemoryCheckpointer() *MemoryCheckpointer {
	return &MemoryCheckpointer{}
}

// SaveProfile records a copy of rec.
func (m *MemoryCheckpointer) SaveProfile(ctx context.Context, rec economy.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	cp := make(economy.Record, len(rec))
	for k, v := range rec {
		cp[k] = v
	}
	m.profiles = append(m.profiles, cp)
	return nil
}

// RecordRun upserts a run by ID, like the sqlite store.
func (m *MemoryCheckpointer) RecordRun(ctx context.Context, run ir.RunSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RunErr != nil {
		return m.RunErr
	}
	for i := range m.runs {
		if m.runs[i].ID == run.ID {
			m.runs[i] = run
			return nil
		}
	}
	m.runs = append(m.runs, run)
	return nil
}

// Saves returns how many profile writes succeeded.
func (m *MemoryCheckpointer) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.profiles)
}

// LastProfile returns the most recently saved record, or nil.
func (m *MemoryCheckpointer) LastProfile() economy.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.profiles) == 0 {
		return nil
	}
	return m.profiles[len(m.profiles)-1]
}

// Runs returns the recorded runs in insertion order.
func (m *MemoryCheckpointer) Runs() []ir.RunSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ir.RunSummary(nil), m.runs...)
}
