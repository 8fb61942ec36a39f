package repository

import (
	"context"
	"errors"

	"school-cms/internal/domain"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("not found")

// UserRepository defines persistence operations for admin users. Users are
// keyed uniquely by email.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
