package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"school-cms/internal/repository"
)

// dummyDigest is compared against when the email matches no user, so a login
// probe costs the same whether or not the account exists.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service implements the login flow: credential check then token issuance.
type Service struct {
	users    repository.UserRepository
	codec    *TokenCodec
	tokenTTL time.Duration
}

// NewService wires the login flow. A non-positive ttl falls back to
// LoginTokenTTL.
func NewService(users repository.UserRepository, codec *TokenCodec, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = LoginTokenTTL
	}
	return &Service{users: users, codec: codec, tokenTTL: tokenTTL}
}

// Login verifies the credentials and returns a signed bearer token. An
// unknown email and a wrong password both fail with ErrUnauthorized.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", ErrUnauthorized
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			VerifyPassword(password, dummyDigest)
			return "", ErrUnauthorized
		}
		return "", err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return "", ErrUnauthorized
	}

	return s.codec.Issue(user.Email, s.tokenTTL)
}
