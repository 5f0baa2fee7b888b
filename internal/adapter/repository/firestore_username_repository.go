package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"vitrina/internal/domain/repository"
	"vitrina/pkg/errors"
)

type firestoreUsernameRepository struct {
	client *firestore.Client
}

func NewFirestoreUsernameRepository(client *firestore.Client) repository.UsernameRepository {
	return &firestoreUsernameRepository{
		client: client,
	}
}

// Reserve claims the handle inside one transaction: read the reservation,
// read the caller's profile, then create the reservation and assign the
// username. Two racing callers for the same handle cannot both commit; one of
// them observes the other's reservation and aborts with HANDLE_TAKEN.
func (r *firestoreUsernameRepository) Reserve(ctx context.Context, handle, userID string) error {
	unameRef := r.client.Collection("usernames").Doc(handle)
	userRef := r.client.Collection("users").Doc(userID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(unameRef)
		if err == nil {
			return errors.HandleTaken()
		}
		if status.Code(err) != codes.NotFound {
			return errors.Internal("Failed to read username reservation", err)
		}

		if _, err := tx.Get(userRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.ProfileMissing(err)
			}
			return errors.Internal("Failed to read user profile", err)
		}

		if err := tx.Create(unameRef, map[string]interface{}{"uid": userID}); err != nil {
			return errors.WriteFailed("Failed to create username reservation", err)
		}

		return tx.Update(userRef, []firestore.Update{
			{Path: "username", Value: handle},
		})
	})
}
