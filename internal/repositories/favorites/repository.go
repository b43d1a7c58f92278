// Package favorites provides the interface for favorite-set persistence.
// The set is global across entity types and survives reloads; callers must
// tolerate an unavailable store by degrading to session-only state.
package favorites

//go:generate mockgen -destination=mock/mock_repository.go -package=favoritesmock github.com/megabonk/catalog-api/internal/repositories/favorites Repository

import (
	"context"
)

// Repository defines the interface for favorite-set persistence
type Repository interface {
	// Toggle flips membership for an entity id and returns the new state.
	// Persistence is synchronous: once Toggle returns, a reload sees it.
	// Returns errors.InvalidArgument for empty ids
	// Returns errors.Unavailable when the store cannot be reached
	Toggle(ctx context.Context, input ToggleInput) (*ToggleOutput, error)

	// IsFavorite reports membership for an entity id
	// Returns errors.InvalidArgument for empty ids
	// Returns errors.Unavailable when the store cannot be reached
	IsFavorite(ctx context.Context, input IsFavoriteInput) (*IsFavoriteOutput, error)

	// List returns every favorited entity id
	// Returns errors.Unavailable when the store cannot be reached
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// ToggleInput defines the input for toggling a favorite
type ToggleInput struct {
	EntityID string
}

// ToggleOutput defines the output for toggling a favorite
type ToggleOutput struct {
	EntityID  string
	Favorited bool
}

// IsFavoriteInput defines the input for a membership check
type IsFavoriteInput struct {
	EntityID string
}

// IsFavoriteOutput defines the output for a membership check
type IsFavoriteOutput struct {
	Favorited bool
}

// ListInput defines the input for listing favorites
type ListInput struct {
	// Empty for now, can be extended later
}

// ListOutput defines the output for listing favorites
type ListOutput struct {
	EntityIDs []string
}
