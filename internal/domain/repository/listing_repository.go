package repository

import (
	"context"

	"vitrina/internal/domain/entity"
)

type ListingRepository interface {
	// Create assigns an ID if missing and persists a complete new document,
	// counters included.
	Create(ctx context.Context, listing *entity.Listing) error

	GetByID(ctx context.Context, id string) (*entity.Listing, error)

	// Update rewrites the mutable fields in place. CreatedAt and the
	// denormalized counters are never touched by an update.
	Update(ctx context.Context, listing *entity.Listing) error

	Delete(ctx context.Context, id string) error

	// List returns the full listing set ordered by creation time descending.
	List(ctx context.Context) ([]*entity.Listing, error)

	// IncrementLikes applies an atomic delta to likesCount. It is independent
	// of the like record write and callers may swallow its failure.
	IncrementLikes(ctx context.Context, id string, delta int) error

	IncrementViews(ctx context.Context, id string) error

	// Watch streams whole-snapshot updates of the listing set, ordered by
	// creation time descending, until ctx is cancelled.
	Watch(ctx context.Context) (<-chan []*entity.Listing, error)
}
