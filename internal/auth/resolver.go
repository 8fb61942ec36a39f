package auth

import (
	"context"
	"errors"

	"school-cms/internal/domain"
	"school-cms/internal/repository"
)

// IdentityResolver recovers the authenticated user behind a bearer token.
// Every protected request re-resolves against the store, so a deleted user
// loses access on their next request even while their token is still
// cryptographically valid.
type IdentityResolver struct {
	codec *TokenCodec
	users repository.UserRepository
}

func NewIdentityResolver(codec *TokenCodec, users repository.UserRepository) *IdentityResolver {
	return &IdentityResolver{codec: codec, users: users}
}

// Resolve verifies the token and loads the subject's user record. An invalid
// or expired token and a token for a nonexistent user all fail with
// ErrUnauthorized; the caller cannot tell which condition occurred.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*domain.User, error) {
	subject, err := r.codec.Verify(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	user, err := r.users.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}
