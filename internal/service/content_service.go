package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"school-cms/internal/docstore"
	"school-cms/internal/domain"
	"school-cms/internal/repository"
)

// ErrInvalidInput marks a request rejected before touching the store.
var ErrInvalidInput = errors.New("invalid input")

// Stats summarizes the collections for the admin dashboard.
type Stats struct {
	Contacts  int64 `json:"contacts"`
	BlogPosts int64 `json:"blogPosts"`
	Events    int64 `json:"events"`
}

// ContentService coordinates the three content collections.
type ContentService interface {
	ListPosts(ctx context.Context) ([]domain.BlogPost, error)
	GetPost(ctx context.Context, id string) (*domain.BlogPost, error)
	CreatePost(ctx context.Context, post *domain.BlogPost) error
	UpdatePost(ctx context.Context, id string, fields map[string]any) (*domain.BlogPost, error)
	DeletePost(ctx context.Context, id string) error

	ListEvents(ctx context.Context) ([]domain.Event, error)
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	CreateEvent(ctx context.Context, event *domain.Event) error
	UpdateEvent(ctx context.Context, id string, fields map[string]any) (*domain.Event, error)
	DeleteEvent(ctx context.Context, id string) error

	ListContacts(ctx context.Context) ([]domain.ContactMessage, error)
	CreateContact(ctx context.Context, msg *domain.ContactMessage) error
	DeleteContact(ctx context.Context, id string) error

	Stats(ctx context.Context) (Stats, error)
}

type contentService struct {
	blog     repository.BlogRepository
	events   repository.EventRepository
	contacts repository.ContactRepository
}

func NewContentService(blog repository.BlogRepository, events repository.EventRepository, contacts repository.ContactRepository) ContentService {
	return &contentService{blog: blog, events: events, contacts: contacts}
}

// Patchable fields per collection. Anything else in an update payload is
// ignored, the way the original documents tolerated extra keys.
var (
	blogPatchFields  = []string{"title", "excerpt", "content", "imageUrl", "publishDate", "readTime"}
	eventPatchFields = []string{"title", "description", "eventDate", "location", "imageUrl"}
)

func (s *contentService) ListPosts(ctx context.Context) ([]domain.BlogPost, error) {
	return s.blog.List(ctx)
}

func (s *contentService) GetPost(ctx context.Context, id string) (*domain.BlogPost, error) {
	return s.blog.Get(ctx, id)
}

func (s *contentService) CreatePost(ctx context.Context, post *domain.BlogPost) error {
	if post.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if post.Excerpt == "" {
		return fmt.Errorf("%w: excerpt is required", ErrInvalidInput)
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.PublishDate.IsZero() {
		post.PublishDate = docstore.Now()
	}
	if post.ReadTime == "" {
		post.ReadTime = domain.DefaultReadTime
	}
	return s.blog.Create(ctx, post)
}

func (s *contentService) UpdatePost(ctx context.Context, id string, fields map[string]any) (*domain.BlogPost, error) {
	return s.blog.Patch(ctx, id, filterFields(fields, blogPatchFields))
}

func (s *contentService) DeletePost(ctx context.Context, id string) error {
	return s.blog.Delete(ctx, id)
}

func (s *contentService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.events.List(ctx)
}

func (s *contentService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.Get(ctx, id)
}

func (s *contentService) CreateEvent(ctx context.Context, event *domain.Event) error {
	if event.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if event.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if event.EventDate.IsZero() {
		return fmt.Errorf("%w: eventDate is required", ErrInvalidInput)
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	return s.events.Create(ctx, event)
}

func (s *contentService) UpdateEvent(ctx context.Context, id string, fields map[string]any) (*domain.Event, error) {
	return s.events.Patch(ctx, id, filterFields(fields, eventPatchFields))
}

func (s *contentService) DeleteEvent(ctx context.Context, id string) error {
	return s.events.Delete(ctx, id)
}

func (s *contentService) ListContacts(ctx context.Context) ([]domain.ContactMessage, error) {
	return s.contacts.List(ctx)
}

func (s *contentService) CreateContact(ctx context.Context, msg *domain.ContactMessage) error {
	if msg.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if msg.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if msg.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidInput)
	}
	if msg.Message == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Date.IsZero() {
		msg.Date = docstore.Now()
	}
	return s.contacts.Create(ctx, msg)
}

func (s *contentService) DeleteContact(ctx context.Context, id string) error {
	return s.contacts.Delete(ctx, id)
}

func (s *contentService) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	var err error
	if stats.Contacts, err = s.contacts.Count(ctx); err != nil {
		return Stats{}, err
	}
	if stats.BlogPosts, err = s.blog.Count(ctx); err != nil {
		return Stats{}, err
	}
	if stats.Events, err = s.events.Count(ctx); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func filterFields(fields map[string]any, allowed []string) map[string]any {
	filtered := make(map[string]any, len(fields))
	for _, key := range allowed {
		if value, ok := fields[key]; ok {
			filtered[key] = value
		}
	}
	return filtered
}
