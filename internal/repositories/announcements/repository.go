// Package announcements persists the "last seen changelog version" flag
// that gates the one-time announcement overlay.
package announcements

import (
	"context"
)

// Repository defines the interface for announcement-flag persistence
type Repository interface {
	// GetLastSeen returns the last acknowledged changelog version, empty
	// when nothing has been acknowledged yet.
	// Returns errors.Unavailable when the store cannot be reached
	GetLastSeen(ctx context.Context, input GetLastSeenInput) (*GetLastSeenOutput, error)

	// SetLastSeen records an acknowledged changelog version.
	// Returns errors.InvalidArgument for empty versions
	// Returns errors.Unavailable when the store cannot be reached
	SetLastSeen(ctx context.Context, input SetLastSeenInput) (*SetLastSeenOutput, error)
}

// GetLastSeenInput defines the input for reading the flag
type GetLastSeenInput struct {
	// Empty for now, can be extended later
}

// GetLastSeenOutput defines the output for reading the flag
type GetLastSeenOutput struct {
	Version string
}

// SetLastSeenInput defines the input for writing the flag
type SetLastSeenInput struct {
	Version string
}

// SetLastSeenOutput defines the output for writing the flag
type SetLastSeenOutput struct {
	// Empty for now, can be extended later
}
