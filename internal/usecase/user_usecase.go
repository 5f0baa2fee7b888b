package usecase

import (
	"context"

	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/repository"
	"vitrina/pkg/errors"
	"vitrina/pkg/utils"
)

const (
	handleMinLength = 3
	handleMaxLength = 20
)

type UserUseCase struct {
	userRepo     repository.UserRepository
	usernameRepo repository.UsernameRepository
	firebaseAuth FirebaseAuthClient
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	usernameRepo repository.UsernameRepository,
	firebaseAuth FirebaseAuthClient,
) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		usernameRepo: usernameRepo,
		firebaseAuth: firebaseAuth,
	}
}

// ReserveUsername normalizes the requested handle and claims it atomically.
// Length limits apply to the normalized form, so "Ana Mi!a" is judged as
// "anamia". Returns the normalized handle on success.
func (uc *UserUseCase) ReserveUsername(ctx context.Context, userID, requested string) (string, error) {
	if userID == "" {
		return "", errors.NotAuthenticated(nil)
	}

	handle := utils.NormalizeHandle(requested)
	if len(handle) < handleMinLength {
		return "", errors.TooShort(handleMinLength)
	}
	if len(handle) > handleMaxLength {
		return "", errors.TooLong(handleMaxLength)
	}

	if err := uc.usernameRepo.Reserve(ctx, handle, userID); err != nil {
		return "", err
	}

	return handle, nil
}

func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, uid)
}

// SetAdminRole flips the signed admin claim, the sole authorization source,
// and mirrors it into the profile's display-only role field.
func (uc *UserUseCase) SetAdminRole(ctx context.Context, uid string, admin bool) error {
	if err := uc.firebaseAuth.SetAdminClaim(ctx, uid, admin); err != nil {
		return errors.Internal("Failed to set admin claim", err)
	}

	role := "user"
	if admin {
		role = "admin"
	}

	return uc.userRepo.UpdateRole(ctx, uid, role)
}
