package repository

import (
	"context"

	"school-cms/internal/domain"
)

// Content collections are keyed uniformly by the generated uuid carried in
// the record's id field; the store-assigned row identity is never exposed.

// BlogRepository defines persistence operations for blog posts.
type BlogRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *domain.BlogPost) error
	Get(ctx context.Context, id string) (*domain.BlogPost, error)
	List(ctx context.Context) ([]domain.BlogPost, error)
	Patch(ctx context.Context, id string, fields map[string]any) (*domain.BlogPost, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// EventRepository defines persistence operations for events.
type EventRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, event *domain.Event) error
	Get(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Patch(ctx context.Context, id string, fields map[string]any) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// ContactRepository defines persistence operations for contact messages.
type ContactRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, msg *domain.ContactMessage) error
	Get(ctx context.Context, id string) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]domain.ContactMessage, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
