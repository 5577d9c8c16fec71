package testkit

import (
	"context"
	"sync"

	"qqfit/ports"
)

// MemParamCache is an in-memory ports.ParamCache for tests. Call counters
// let tests assert that the cache short-circuited a fit, and FailWith forces
// every operation to fail for error-path coverage.
type MemParamCache struct {
	mu       sync.Mutex
	entries  map[ports.FitKey][]float64
	Loads    int
	Stores   int
	FailWith error
}

// NewMemParamCache creates an empty in-memory parameter cache.
func NewMemParamCache() *MemParamCache {
	return &MemParamCache{entries: make(map[ports.FitKey][]float64)}
}

// Load returns the stored vector for key, counting the call.
func (m *MemParamCache) Load(ctx context.Context, key ports.FitKey) ([]float64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Loads++
	if m.FailWith != nil {
		return nil, false, m.FailWith
	}
	params, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]float64(nil), params...), true, nil
}

// Store records the vector for key, counting the call.
func (m *MemParamCache) Store(ctx context.Context, key ports.FitKey, params []float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Stores++
	if m.FailWith != nil {
		return m.FailWith
	}
	m.entries[key] = append([]float64(nil), params...)
	return nil
}

// Seed plants an entry without counting a store.
func (m *MemParamCache) Seed(key ports.FitKey, params []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = append([]float64(nil), params...)
}

// Len returns the number of cached entries.
func (m *MemParamCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
