package repository

import (
	"context"

	"vitrina/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error

	GetByID(ctx context.Context, id string) (*entity.User, error)

	// UpdateIdentityFields mirrors email, display name and photo URL from the
	// identity provider. Username, suggestedUsername, role and createdAt are
	// left alone.
	UpdateIdentityFields(ctx context.Context, user *entity.User) error

	// UpdateRole changes the display-only role hint.
	UpdateRole(ctx context.Context, id, role string) error
}
