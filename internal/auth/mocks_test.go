package auth

import (
	"context"

	"school-cms/internal/domain"
	"school-cms/internal/repository"
)

type userRepoStub struct {
	user *domain.User
	err  error
}

func (s *userRepoStub) Init(context.Context) error { return nil }

func (s *userRepoStub) Create(context.Context, *domain.User) error { return nil }

func (s *userRepoStub) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, repository.ErrNotFound
}
