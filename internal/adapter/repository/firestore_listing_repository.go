package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/repository"
	"vitrina/pkg/errors"
	"vitrina/pkg/logger"
)

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
	}
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	if listing.ID == "" {
		doc := r.client.Collection("listings").NewDoc()
		listing.ID = doc.ID
	}

	now := time.Now()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	listing.UpdatedAt = now

	_, err := r.client.Collection("listings").Doc(listing.ID).Set(ctx, listing)
	if err != nil {
		return errors.WriteFailed("Failed to create listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	doc, err := r.client.Collection("listings").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Listing", err)
		}
		return nil, errors.Internal("Failed to get listing", err)
	}

	var listing entity.Listing
	if err := doc.DataTo(&listing); err != nil {
		return nil, errors.Internal("Failed to parse listing data", err)
	}
	listing.ID = doc.Ref.ID

	return &listing, nil
}

// Update rewrites the mutable fields only. CreatedAt, likesCount,
// commentsCount and views are never part of an update.
func (r *firestoreListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	_, err := r.client.Collection("listings").Doc(listing.ID).Update(ctx, []firestore.Update{
		{Path: "name", Value: listing.Name},
		{Path: "age", Value: listing.Age},
		{Path: "price", Value: listing.Price},
		{Path: "description", Value: listing.Description},
		{Path: "locations", Value: listing.Locations},
		{Path: "image", Value: listing.Image},
		{Path: "images", Value: listing.Images},
		{Path: "videos", Value: listing.Videos},
		{Path: "measurements", Value: listing.Measurements},
		{Path: "contact", Value: listing.Contact},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Listing", err)
		}
		return errors.WriteFailed("Failed to update listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("listings").Doc(id).Delete(ctx)
	if err != nil {
		return errors.WriteFailed("Failed to delete listing", err)
	}

	return nil
}

func (r *firestoreListingRepository) List(ctx context.Context) ([]*entity.Listing, error) {
	iter := r.client.Collection("listings").OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var listings []*entity.Listing
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate listings", err)
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			logger.Warn("Skipping unparsable listing %s: %v", doc.Ref.ID, err)
			continue
		}
		listing.ID = doc.Ref.ID
		listings = append(listings, &listing)
	}

	return listings, nil
}

func (r *firestoreListingRepository) IncrementLikes(ctx context.Context, id string, delta int) error {
	_, err := r.client.Collection("listings").Doc(id).Update(ctx, []firestore.Update{
		{Path: "likesCount", Value: firestore.Increment(delta)},
	})
	if err != nil {
		return errors.WriteFailed("Failed to update like counter", err)
	}

	return nil
}

func (r *firestoreListingRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection("listings").Doc(id).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	if err != nil {
		return errors.WriteFailed("Failed to increment listing views", err)
	}

	return nil
}

func (r *firestoreListingRepository) Watch(ctx context.Context) (<-chan []*entity.Listing, error) {
	snaps := r.client.Collection("listings").OrderBy("createdAt", firestore.Desc).Snapshots(ctx)

	out := make(chan []*entity.Listing, 1)
	go func() {
		defer snaps.Stop()
		defer close(out)

		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled && ctx.Err() == nil {
					logger.Error("Listings watch stopped: %v", err)
				}
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				logger.Error("Failed to read listings snapshot: %v", err)
				continue
			}

			listings := make([]*entity.Listing, 0, len(docs))
			for _, doc := range docs {
				var listing entity.Listing
				if err := doc.DataTo(&listing); err != nil {
					logger.Warn("Skipping unparsable listing %s: %v", doc.Ref.ID, err)
					continue
				}
				listing.ID = doc.Ref.ID
				listings = append(listings, &listing)
			}

			select {
			case out <- listings:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
