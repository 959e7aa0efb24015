package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"bookcatalog-core/internal/domains/author"
	"bookcatalog-core/internal/domains/author/model"
)

// memoryRepository is the reference in-process adapter. It mirrors the
// Postgres adapter's contract and backs the test suites.
type memoryRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]model.Author
	failOn error
}

// NewMemoryRepository creates an empty in-memory author repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[uuid.UUID]model.Author)}
}

// NewFailingMemoryRepository returns a repository whose every operation
// fails with the given error. Used to exercise the use-case error path.
func NewFailingMemoryRepository(err error) Repository {
	return &memoryRepository{byID: make(map[uuid.UUID]model.Author), failOn: err}
}

func (r *memoryRepository) Save(ctx context.Context, a *model.Author) (*model.Author, error) {
	if r.failOn != nil {
		return nil, r.failOn
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	// Full-record replace; duplicate email maps to the domain sentinel
	// the same way the unique constraint does in Postgres.
	if a.Email != nil {
		for id, existing := range r.byID {
			if id != a.ID && existing.Email != nil && existing.Email.Equals(*a.Email) {
				return nil, author.ErrEmailTaken
			}
		}
	}

	r.byID[a.ID] = *a
	saved := *a
	return &saved, nil
}

func (r *memoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	if r.failOn != nil {
		return nil, r.failOn
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return &a, nil
}

func (r *memoryRepository) FindByEmail(ctx context.Context, email string) (*model.Author, error) {
	if r.failOn != nil {
		return nil, r.failOn
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range r.byID {
		if a.Email != nil && a.Email.String() == email {
			found := a
			return &found, nil
		}
	}
	return nil, author.ErrAuthorNotFound
}

func (r *memoryRepository) Search(ctx context.Context, filter author.Filter) ([]model.Author, int64, error) {
	if r.failOn != nil {
		return nil, 0, r.failOn
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(filter.Query))

	var matched []model.Author
	for _, a := range r.byID {
		if query != "" && !strings.Contains(strings.ToLower(a.Name.FullName()), query) {
			continue
		}
		if filter.Nationality != "" {
			if a.Nationality == nil || !strings.EqualFold(*a.Nationality, filter.Nationality) {
				continue
			}
		}
		if filter.IsActive != nil && a.IsActive != *filter.IsActive {
			continue
		}
		matched = append(matched, a)
	}

	sortAuthors(matched, filter.SortBy, filter.Order)
	total := int64(len(matched))

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []model.Author{}, total, nil
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
		return author.ErrAuthorNotFound
	}
	delete(r.byID, id)
	return nil
}

func sortAuthors(authors []model.Author, sortBy, order string) {
	desc := strings.EqualFold(order, "DESC") || order == ""
	sort.SliceStable(authors, func(i, j int) bool {
		a, b := authors[i], authors[j]
		if desc {
			a, b = b, a
		}
		switch sortBy {
		case "name":
			return a.Name.DisplayName() < b.Name.DisplayName()
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		default: // created_at
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}
