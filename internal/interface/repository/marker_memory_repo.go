package repository

import (
	"context"
	"sync"
	"time"

	"farecast-service/internal/domain/repository"
)

type memoryMarker struct {
	value     string
	expiresAt time.Time
}

// MemoryMarkerRepository keeps markers in process memory.
// Markers do not survive a restart.
type MemoryMarkerRepository struct {
	mu      sync.Mutex
	markers map[string]memoryMarker
	now     func() time.Time
}

// NewMemoryMarkerRepository creates an empty in-memory marker store
func NewMemoryMarkerRepository() repository.MarkerRepository {
	return newMemoryMarkerRepository(time.Now)
}

func newMemoryMarkerRepository(now func() time.Time) *MemoryMarkerRepository {
	return &MemoryMarkerRepository{
		markers: make(map[string]memoryMarker),
		now:     now,
	}
}

// Get returns the marker value if present and not expired
func (r *MemoryMarkerRepository) Get(ctx context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.markers[key]
	if !ok {
		return "", false, nil
	}
	if !m.expiresAt.After(r.now()) {
		delete(r.markers, key)
		return "", false, nil
	}
	return m.value, true, nil
}

// Put stores value under key for ttl
func (r *MemoryMarkerRepository) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.markers[key] = memoryMarker{value: value, expiresAt: r.now().Add(ttl)}
	return nil
}

// Delete removes key
func (r *MemoryMarkerRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.markers, key)
	return nil
}
