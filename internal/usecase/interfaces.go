package usecase

import (
	"context"

	"vitrina/internal/domain/entity"
)

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	GetIdentity(ctx context.Context, uid string) (*entity.Identity, error)
	SetAdminClaim(ctx context.Context, uid string, admin bool) error
	SignInWithEmailPassword(email, password string) (string, error)
}
