package favorites

import (
	"context"
	"sync"

	"github.com/megabonk/catalog-api/internal/errors"
)

// InMemoryRepository implements Repository with session-only storage. It is
// the silent fallback when durable persistence is unavailable: the feature
// keeps working, state just does not survive a restart.
type InMemoryRepository struct {
	mu  sync.RWMutex
	set map[string]struct{}
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		set: make(map[string]struct{}),
	}
}

// Toggle flips membership for an entity id
func (r *InMemoryRepository) Toggle(_ context.Context, input ToggleInput) (*ToggleOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument(errEntityIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.set[input.EntityID]; ok {
		delete(r.set, input.EntityID)
		return &ToggleOutput{EntityID: input.EntityID, Favorited: false}, nil
	}

	r.set[input.EntityID] = struct{}{}
	return &ToggleOutput{EntityID: input.EntityID, Favorited: true}, nil
}

// IsFavorite reports membership for an entity id
func (r *InMemoryRepository) IsFavorite(_ context.Context, input IsFavoriteInput) (*IsFavoriteOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument(errEntityIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.set[input.EntityID]
	return &IsFavoriteOutput{Favorited: ok}, nil
}

// List returns every favorited entity id
func (r *InMemoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.set))
	for id := range r.set {
		ids = append(ids, id)
	}
	return &ListOutput{EntityIDs: ids}, nil
}
