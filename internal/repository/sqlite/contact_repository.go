package sqlite

import (
	"context"
	"database/sql"

	"school-cms/internal/docstore"
	"school-cms/internal/domain"
	"school-cms/internal/repository"
)

type ContactRepository struct {
	docs documents
}

func NewContactRepository(db *sql.DB) repository.ContactRepository {
	return &ContactRepository{docs: documents{db: db, table: "contact_messages", instantField: "date"}}
}

func (r *ContactRepository) Init(ctx context.Context) error {
	return r.docs.init(ctx)
}

func (r *ContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	doc, err := docstore.Encode(msg)
	if err != nil {
		return err
	}
	return r.docs.insert(ctx, msg.ID, doc)
}

func (r *ContactRepository) Get(ctx context.Context, id string) (*domain.ContactMessage, error) {
	raw, err := r.docs.get(ctx, id)
	if err != nil {
		return nil, err
	}
	var msg domain.ContactMessage
	if err := docstore.Decode(raw, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *ContactRepository) List(ctx context.Context) ([]domain.ContactMessage, error) {
	raws, err := r.docs.list(ctx)
	if err != nil {
		return nil, err
	}
	msgs := make([]domain.ContactMessage, len(raws))
	for i, raw := range raws {
		if err := docstore.Decode(raw, &msgs[i]); err != nil {
			return nil, err
		}
	}
	return msgs, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

func (r *ContactRepository) Count(ctx context.Context) (int64, error) {
	return r.docs.count(ctx)
}
