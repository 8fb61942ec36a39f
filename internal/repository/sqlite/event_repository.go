package sqlite

import (
	"context"
	"database/sql"

	"school-cms/internal/docstore"
	"school-cms/internal/domain"
	"school-cms/internal/repository"
)

type EventRepository struct {
	docs documents
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &EventRepository{docs: documents{db: db, table: "events", instantField: "eventDate"}}
}

func (r *EventRepository) Init(ctx context.Context) error {
	return r.docs.init(ctx)
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	doc, err := docstore.Encode(event)
	if err != nil {
		return err
	}
	return r.docs.insert(ctx, event.ID, doc)
}

func (r *EventRepository) Get(ctx context.Context, id string) (*domain.Event, error) {
	raw, err := r.docs.get(ctx, id)
	if err != nil {
		return nil, err
	}
	var event domain.Event
	if err := docstore.Decode(raw, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	raws, err := r.docs.list(ctx)
	if err != nil {
		return nil, err
	}
	events := make([]domain.Event, len(raws))
	for i, raw := range raws {
		if err := docstore.Decode(raw, &events[i]); err != nil {
			return nil, err
		}
	}
	return events, nil
}

func (r *EventRepository) Patch(ctx context.Context, id string, fields map[string]any) (*domain.Event, error) {
	merged, err := r.docs.patch(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	var event domain.Event
	if err := docstore.Decode(merged, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	return r.docs.count(ctx)
}
