package announcements

import (
	"context"
	"sync"

	"github.com/megabonk/catalog-api/internal/errors"
)

// InMemoryRepository implements Repository with session-only storage. With
// it, the announcement overlay shows once per process instead of once per
// version, which is the accepted degrade when persistence is unavailable.
type InMemoryRepository struct {
	mu      sync.RWMutex
	version string
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{}
}

// GetLastSeen returns the last acknowledged version
func (r *InMemoryRepository) GetLastSeen(_ context.Context, _ GetLastSeenInput) (*GetLastSeenOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return &GetLastSeenOutput{Version: r.version}, nil
}

// SetLastSeen records an acknowledged version
func (r *InMemoryRepository) SetLastSeen(_ context.Context, input SetLastSeenInput) (*SetLastSeenOutput, error) {
	if input.Version == "" {
		return nil, errors.InvalidArgument("version cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.version = input.Version
	return &SetLastSeenOutput{}, nil
}
