package db

import "context"

// AvailabilityStore defines the availability row operations the
// application needs from its persistence backend.
type AvailabilityStore interface {
	GetAvailabilities(ctx context.Context) ([]AvailabilityRow, error)
	InsertAvailability(ctx context.Context, row *AvailabilityRow) error
}

// ProfileStore defines the person profile operations.
type ProfileStore interface {
	GetProfiles(ctx context.Context) ([]ProfileRow, error)
	InsertProfile(ctx context.Context, row *ProfileRow) error
}

// Store combines all database operations.
// The postgres-backed DB implements this interface.
type Store interface {
	AvailabilityStore
	ProfileStore
}
