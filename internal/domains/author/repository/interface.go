package repository

import (
	"context"

	"github.com/google/uuid"

	"bookcatalog-core/internal/domains/author"
	"bookcatalog-core/internal/domains/author/model"
)

// Repository is the persistence port consumed by the author use cases.
// Save on an unknown id inserts; on a known id it replaces the full
// record. Lookups return author.ErrAuthorNotFound when nothing matches.
type Repository interface {
	Save(ctx context.Context, a *model.Author) (*model.Author, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	FindByEmail(ctx context.Context, email string) (*model.Author, error)
	Search(ctx context.Context, filter author.Filter) ([]model.Author, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
