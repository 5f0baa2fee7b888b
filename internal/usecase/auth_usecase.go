package usecase

import (
	"context"
	"time"

	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/repository"
	"vitrina/pkg/errors"
	"vitrina/pkg/logger"
	"vitrina/pkg/utils"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewAuthUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

type AuthResult struct {
	User  *entity.User
	Token string
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	uid, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, input.DisplayName)
	if err != nil {
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	token, err := uc.firebaseAuth.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	user, err := uc.SyncProfile(ctx, &entity.Identity{
		UID:         uid,
		Email:       input.Email,
		DisplayName: input.DisplayName,
	})
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	token, err := uc.firebaseAuth.SignInWithEmailPassword(email, password)
	if err != nil {
		logger.Warn("Login failed for %s: %v", email, err)
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	uid, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Internal("Failed to verify token", err)
	}

	identity, err := uc.firebaseAuth.GetIdentity(ctx, uid)
	if err != nil {
		return nil, errors.Internal("Failed to load identity", err)
	}

	user, err := uc.SyncProfile(ctx, identity)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// SyncProfile upserts the profile document for a signed-in identity. On
// first sign-in the profile is created with an empty username and a suggested
// handle computed once; on later sign-ins only the mirrored identity fields
// are refreshed.
func (uc *AuthUseCase) SyncProfile(ctx context.Context, identity *entity.Identity) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, identity.UID)
	if err != nil {
		if !errors.Is(err, "PROFILE_MISSING") {
			return nil, err
		}

		now := time.Now()
		user = &entity.User{
			ID:                identity.UID,
			Email:             identity.Email,
			DisplayName:       identity.DisplayName,
			PhotoURL:          identity.PhotoURL,
			Username:          "",
			SuggestedUsername: utils.SuggestUsername(identity.DisplayName, identity.Email),
			Role:              "user",
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}

		return user, nil
	}

	user.Email = identity.Email
	user.DisplayName = identity.DisplayName
	user.PhotoURL = identity.PhotoURL

	if err := uc.userRepo.UpdateIdentityFields(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *AuthUseCase) GetProfile(ctx context.Context, uid string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, uid)
}
