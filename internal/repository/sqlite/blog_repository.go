package sqlite

import (
	"context"
	"database/sql"

	"school-cms/internal/docstore"
	"school-cms/internal/domain"
	"school-cms/internal/repository"
)

type BlogRepository struct {
	docs documents
}

func NewBlogRepository(db *sql.DB) repository.BlogRepository {
	return &BlogRepository{docs: documents{db: db, table: "blog_posts", instantField: "publishDate"}}
}

func (r *BlogRepository) Init(ctx context.Context) error {
	return r.docs.init(ctx)
}

func (r *BlogRepository) Create(ctx context.Context, post *domain.BlogPost) error {
	doc, err := docstore.Encode(post)
	if err != nil {
		return err
	}
	return r.docs.insert(ctx, post.ID, doc)
}

func (r *BlogRepository) Get(ctx context.Context, id string) (*domain.BlogPost, error) {
	raw, err := r.docs.get(ctx, id)
	if err != nil {
		return nil, err
	}
	var post domain.BlogPost
	if err := docstore.Decode(raw, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *BlogRepository) List(ctx context.Context) ([]domain.BlogPost, error) {
	raws, err := r.docs.list(ctx)
	if err != nil {
		return nil, err
	}
	posts := make([]domain.BlogPost, len(raws))
	for i, raw := range raws {
		if err := docstore.Decode(raw, &posts[i]); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func (r *BlogRepository) Patch(ctx context.Context, id string, fields map[string]any) (*domain.BlogPost, error) {
	merged, err := r.docs.patch(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	var post domain.BlogPost
	if err := docstore.Decode(merged, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

func (r *BlogRepository) Count(ctx context.Context) (int64, error) {
	return r.docs.count(ctx)
}
