package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"bookcatalog-core/internal/domains/book"
	"bookcatalog-core/internal/domains/book/model"
)

// memoryRepository is the reference in-process adapter mirroring the
// Postgres adapter's contract.
type memoryRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]model.Book
	failOn error
}

// NewMemoryRepository creates an empty in-memory book repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[uuid.UUID]model.Book)}
}

// NewFailingMemoryRepository returns a repository whose every operation
// fails with the given error.
func NewFailingMemoryRepository(err error) Repository {
	return &memoryRepository{byID: make(map[uuid.UUID]model.Book), failOn: err}
}

func (r *memoryRepository) Save(ctx context.Context, b *model.Book) (*model.Book, error) {
	if r.failOn != nil {
		return nil, r.failOn
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.byID {
		if id != b.ID && existing.ISBN.Equals(b.ISBN) {
			return nil, book.ErrISBNTaken
		}
	}

	r.byID[b.ID] = *b
	saved := *b
	return &saved, nil
}

func (r *memoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	if r.failOn != nil {
		return nil, r.failOn
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return &b, nil
}

func (r *memoryRepository) FindByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	if r.failOn != nil {
		return nil, r.failOn
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	isbn = strings.TrimSpace(isbn)
	for _, b := range r.byID {
		if b.ISBN.String() == isbn {
			found := b
			return &found, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (r *memoryRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*model.Book, error) {
	if r.failOn != nil {
		return nil, r.failOn
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var books []*model.Book
	for _, b := range r.byID {
		if b.AuthorID == authorID {
			found := b
			books = append(books, &found)
		}
	}
	sort.Slice(books, func(i, j int) bool {
		return books[i].CreatedAt.Before(books[j].CreatedAt)
	})
	return books, nil
}

func (r *memoryRepository) Search(ctx context.Context, filter book.Filter) ([]model.Book, int64, error) {
	if r.failOn != nil {
		return nil, 0, r.failOn
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(filter.Query))

	var matched []model.Book
	for _, b := range r.byID {
		if query != "" && !strings.Contains(strings.ToLower(b.Title.String()), query) {
			continue
		}
		if filter.AuthorID != nil && b.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.Genre != "" {
			if b.Genre == nil || !strings.EqualFold(*b.Genre, filter.Genre) {
				continue
			}
		}
		if filter.IsActive != nil && b.IsActive != *filter.IsActive {
			continue
		}
		matched = append(matched, b)
	}

	desc := strings.EqualFold(filter.Order, "DESC") || filter.Order == ""
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if desc {
			a, b = b, a
		}
		if filter.SortBy == "title" {
			return a.Title.String() < b.Title.String()
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	total := int64(len(matched))
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []model.Book{}, total, nil
	}
	end := len(matched)
	if filter.Limit > 0 && offset+filter.Limit < end {
		end = offset + filter.Limit
	}
	return matched[offset:end], total, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.failOn != nil {
		return r.failOn
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.byID, id)
	return nil
}
