package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// Repository contains all DB interactions needed by the identity service.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)

	Insert(ctx context.Context, u User) (*User, error)
	UpdateRoles(ctx context.Context, id uuid.UUID, roles []Role) (*User, error)
}
