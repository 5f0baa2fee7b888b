package repository

import (
	"context"
)

// UsernameRepository owns the usernames uniqueness index. A reservation
// document keyed by the normalized handle is the single source of truth for
// uniqueness.
type UsernameRepository interface {
	// Reserve atomically claims the handle for the user: it fails with
	// HANDLE_TAKEN if a reservation exists, with PROFILE_MISSING if the
	// caller has no profile, and otherwise creates the reservation and sets
	// the profile's username in the same transaction.
	Reserve(ctx context.Context, handle, userID string) error
}
