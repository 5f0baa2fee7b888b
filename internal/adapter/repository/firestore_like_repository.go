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

type firestoreLikeRepository struct {
	client *firestore.Client
}

func NewFirestoreLikeRepository(client *firestore.Client) repository.LikeRepository {
	return &firestoreLikeRepository{
		client: client,
	}
}

func (r *firestoreLikeRepository) likes(userID string) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(userID).Collection("likes")
}

func (r *firestoreLikeRepository) Set(ctx context.Context, userID, listingID string) error {
	like := entity.Like{
		ListingID: listingID,
		CreatedAt: time.Now(),
	}

	_, err := r.likes(userID).Doc(listingID).Set(ctx, like)
	if err != nil {
		return errors.WriteFailed("Failed to create like record", err)
	}

	return nil
}

func (r *firestoreLikeRepository) Delete(ctx context.Context, userID, listingID string) error {
	_, err := r.likes(userID).Doc(listingID).Delete(ctx)
	if err != nil {
		return errors.WriteFailed("Failed to delete like record", err)
	}

	return nil
}

func (r *firestoreLikeRepository) Exists(ctx context.Context, userID, listingID string) (bool, error) {
	doc, err := r.likes(userID).Doc(listingID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errors.Internal("Failed to check like record", err)
	}

	return doc.Exists(), nil
}

func (r *firestoreLikeRepository) ListIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	iter := r.likes(userID).Documents(ctx)
	defer iter.Stop()

	ids := make(map[string]struct{})
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate likes", err)
		}
		ids[doc.Ref.ID] = struct{}{}
	}

	return ids, nil
}

func (r *firestoreLikeRepository) Watch(ctx context.Context, userID string) (<-chan map[string]struct{}, error) {
	snaps := r.likes(userID).Snapshots(ctx)

	out := make(chan map[string]struct{}, 1)
	go func() {
		defer snaps.Stop()
		defer close(out)

		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled && ctx.Err() == nil {
					logger.Error("Likes watch for user %s stopped: %v", userID, err)
				}
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				logger.Error("Failed to read likes snapshot: %v", err)
				continue
			}

			ids := make(map[string]struct{}, len(docs))
			for _, doc := range docs {
				ids[doc.Ref.ID] = struct{}{}
			}

			select {
			case out <- ids:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
