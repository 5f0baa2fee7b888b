package repository

import (
	"context"
)

// LikeRepository manages the per-user like records under users/{uid}/likes.
// Record existence is the liked state and the ground truth for likes; the
// listing's likesCount counter is maintained separately.
type LikeRepository interface {
	Set(ctx context.Context, userID, listingID string) error

	Delete(ctx context.Context, userID, listingID string) error

	Exists(ctx context.Context, userID, listingID string) (bool, error)

	// ListIDs returns the set of listing IDs the user has liked.
	ListIDs(ctx context.Context, userID string) (map[string]struct{}, error)

	// Watch streams the user's liked-id set on every change until ctx is
	// cancelled.
	Watch(ctx context.Context, userID string) (<-chan map[string]struct{}, error)
}
