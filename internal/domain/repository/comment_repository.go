package repository

import (
	"context"

	"vitrina/internal/domain/entity"
)

type CommentRepository interface {
	// Create appends a flat comment record to the listing's subcollection.
	// ParentID is stored as given; it is not validated against existence at
	// write time.
	Create(ctx context.Context, listingID string, comment *entity.Comment) error

	// ListByListing returns the listing's comments ordered by creation time
	// ascending.
	ListByListing(ctx context.Context, listingID string) ([]entity.Comment, error)

	// Watch streams whole-snapshot updates of one listing's comments, ordered
	// by creation time ascending, until ctx is cancelled.
	Watch(ctx context.Context, listingID string) (<-chan []entity.Comment, error)
}
