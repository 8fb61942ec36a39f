package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-cms/internal/domain"
	"school-cms/internal/repository"
)

type blogRepoStub struct {
	repository.BlogRepository
	created     *domain.BlogPost
	patched     map[string]any
	patchResult *domain.BlogPost
}

func (s *blogRepoStub) Create(_ context.Context, post *domain.BlogPost) error {
	s.created = post
	return nil
}

func (s *blogRepoStub) Patch(_ context.Context, _ string, fields map[string]any) (*domain.BlogPost, error) {
	s.patched = fields
	return s.patchResult, nil
}

type eventRepoStub struct {
	repository.EventRepository
	created *domain.Event
}

func (s *eventRepoStub) Create(_ context.Context, event *domain.Event) error {
	s.created = event
	return nil
}

func TestCreatePostAppliesDefaults(t *testing.T) {
	blog := &blogRepoStub{}
	svc := NewContentService(blog, nil, nil)

	post := &domain.BlogPost{Title: "Term opens", Excerpt: "A new year"}
	require.NoError(t, svc.CreatePost(context.Background(), post))

	assert.NotEmpty(t, post.ID)
	assert.False(t, post.PublishDate.IsZero())
	assert.Equal(t, domain.DefaultReadTime, post.ReadTime)
	assert.Same(t, post, blog.created)
}

func TestCreatePostRequiresTitleAndExcerpt(t *testing.T) {
	svc := NewContentService(&blogRepoStub{}, nil, nil)

	err := svc.CreatePost(context.Background(), &domain.BlogPost{Excerpt: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.CreatePost(context.Background(), &domain.BlogPost{Title: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateEventRequiresDate(t *testing.T) {
	svc := NewContentService(nil, &eventRepoStub{}, nil)

	err := svc.CreateEvent(context.Background(), &domain.Event{Title: "E", Description: "d"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// An update payload cannot smuggle in the record id or unknown keys.
func TestUpdatePostFiltersFields(t *testing.T) {
	blog := &blogRepoStub{patchResult: &domain.BlogPost{ID: "b1"}}
	svc := NewContentService(blog, nil, nil)

	_, err := svc.UpdatePost(context.Background(), "b1", map[string]any{
		"title":   "New title",
		"id":      "evil",
		"unknown": "dropped",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "New title"}, blog.patched)
}
