package repository

import (
	"context"

	"github.com/google/uuid"

	"bookcatalog-core/internal/domains/book"
	"bookcatalog-core/internal/domains/book/model"
)

// Repository is the persistence port consumed by the book use cases.
// Save on an unknown id inserts; on a known id it replaces the full
// record. Lookups return book.ErrBookNotFound when nothing matches.
type Repository interface {
	Save(ctx context.Context, b *model.Book) (*model.Book, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*model.Book, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*model.Book, error)
	Search(ctx context.Context, filter book.Filter) ([]model.Book, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
