package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-core/internal/domains/author"
	"bookcatalog-core/internal/domains/author/model"
	"bookcatalog-core/internal/shared/values"
)

func saveAuthor(t *testing.T, repo Repository, first, last, email, nationality string) *model.Author {
	t.Helper()
	name, err := values.NewPersonName(first, "", last)
	require.NoError(t, err)

	var emailPtr *values.EmailAddress
	if email != "" {
		addr, err := values.NewEmailAddress(email)
		require.NoError(t, err)
		emailPtr = &addr
	}
	var natPtr *string
	if nationality != "" {
		natPtr = &nationality
	}

	a, err := model.NewAuthor(name, emailPtr, nil, nil, natPtr)
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), a)
	require.NoError(t, err)
	return saved
}

func TestMemorySaveEnforcesEmailUniqueness(t *testing.T) {
	repo := NewMemoryRepository()
	saveAuthor(t, repo, "John", "Doe", "john@example.com", "")

	name, err := values.NewPersonName("Jane", "", "Doe")
	require.NoError(t, err)
	addr, err := values.NewEmailAddress("john@example.com")
	require.NoError(t, err)
	dup, err := model.NewAuthor(name, &addr, nil, nil, nil)
	require.NoError(t, err)

	_, err = repo.Save(context.Background(), dup)
	assert.ErrorIs(t, err, author.ErrEmailTaken)
}

func TestMemoryFindByEmail(t *testing.T) {
	repo := NewMemoryRepository()
	saved := saveAuthor(t, repo, "John", "Doe", "john@example.com", "")

	found, err := repo.FindByEmail(context.Background(), "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, found.ID)

	_, err = repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestMemorySearchFilters(t *testing.T) {
	repo := NewMemoryRepository()
	saveAuthor(t, repo, "Alice", "Adams", "", "Irish")
	brian := saveAuthor(t, repo, "Brian", "Brown", "", "Welsh")
	brian.Deactivate()
	_, err := repo.Save(context.Background(), brian)
	require.NoError(t, err)
	saveAuthor(t, repo, "Carol", "Clark", "", "Irish")

	found, total, err := repo.Search(context.Background(), author.Filter{Nationality: "Irish"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, found, 2)

	active := true
	found, total, err = repo.Search(context.Background(), author.Filter{IsActive: &active})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	found, total, err = repo.Search(context.Background(), author.Filter{Query: "brow"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "Brian Brown", found[0].Name.FullName())
}

func TestMemorySearchPagination(t *testing.T) {
	repo := NewMemoryRepository()
	saveAuthor(t, repo, "Alice", "Adams", "", "")
	saveAuthor(t, repo, "Brian", "Brown", "", "")
	saveAuthor(t, repo, "Carol", "Clark", "", "")

	found, total, err := repo.Search(context.Background(), author.Filter{
		SortBy: "name",
		Order:  "ASC",
		Limit:  2,
		Offset: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, found, 2)
	assert.Equal(t, "Brian Brown", found[0].Name.FullName())
	assert.Equal(t, "Carol Clark", found[1].Name.FullName())

	found, _, err = repo.Search(context.Background(), author.Filter{Offset: 99})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestMemoryDelete(t *testing.T) {
	repo := NewMemoryRepository()
	saved := saveAuthor(t, repo, "John", "Doe", "", "")

	require.NoError(t, repo.Delete(context.Background(), saved.ID))
	assert.ErrorIs(t, repo.Delete(context.Background(), saved.ID), author.ErrAuthorNotFound)
}
