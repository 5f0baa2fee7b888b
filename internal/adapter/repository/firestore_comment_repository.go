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

type firestoreCommentRepository struct {
	client *firestore.Client
}

func NewFirestoreCommentRepository(client *firestore.Client) repository.CommentRepository {
	return &firestoreCommentRepository{
		client: client,
	}
}

func (r *firestoreCommentRepository) comments(listingID string) *firestore.CollectionRef {
	return r.client.Collection("listings").Doc(listingID).Collection("comments")
}

func (r *firestoreCommentRepository) Create(ctx context.Context, listingID string, comment *entity.Comment) error {
	if comment.ID == "" {
		doc := r.comments(listingID).NewDoc()
		comment.ID = doc.ID
	}
	comment.CreatedAt = time.Now()

	_, err := r.comments(listingID).Doc(comment.ID).Set(ctx, comment)
	if err != nil {
		return errors.WriteFailed("Failed to create comment", err)
	}

	return nil
}

func (r *firestoreCommentRepository) ListByListing(ctx context.Context, listingID string) ([]entity.Comment, error) {
	iter := r.comments(listingID).OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var comments []entity.Comment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate comments", err)
		}

		var comment entity.Comment
		if err := doc.DataTo(&comment); err != nil {
			logger.Warn("Skipping unparsable comment %s: %v", doc.Ref.ID, err)
			continue
		}
		comment.ID = doc.Ref.ID
		comments = append(comments, comment)
	}

	return comments, nil
}

func (r *firestoreCommentRepository) Watch(ctx context.Context, listingID string) (<-chan []entity.Comment, error) {
	snaps := r.comments(listingID).OrderBy("createdAt", firestore.Asc).Snapshots(ctx)

	out := make(chan []entity.Comment, 1)
	go func() {
		defer snaps.Stop()
		defer close(out)

		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled && ctx.Err() == nil {
					logger.Error("Comments watch for listing %s stopped: %v", listingID, err)
				}
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				logger.Error("Failed to read comments snapshot: %v", err)
				continue
			}

			comments := make([]entity.Comment, 0, len(docs))
			for _, doc := range docs {
				var comment entity.Comment
				if err := doc.DataTo(&comment); err != nil {
					logger.Warn("Skipping unparsable comment %s: %v", doc.Ref.ID, err)
					continue
				}
				comment.ID = doc.Ref.ID
				comments = append(comments, comment)
			}

			select {
			case out <- comments:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
