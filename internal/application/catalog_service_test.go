package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-core/internal/domains/author"
	authorrepo "bookcatalog-core/internal/domains/author/repository"
	authorusecase "bookcatalog-core/internal/domains/author/usecase"
	"bookcatalog-core/internal/domains/book"
	bookrepo "bookcatalog-core/internal/domains/book/repository"
	bookusecase "bookcatalog-core/internal/domains/book/usecase"
	"bookcatalog-core/internal/domains/catalog/service"
	"bookcatalog-core/internal/events"
	"bookcatalog-core/pkg/cache"
	"bookcatalog-core/pkg/logger"
)

type fixture struct {
	svc      *CatalogService
	authors  authorrepo.Repository
	books    bookrepo.Repository
	recorder *events.Recorder
	cache    cache.Cache
	create   *bookusecase.CreateBookUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		authors:  authorrepo.NewMemoryRepository(),
		books:    bookrepo.NewMemoryRepository(),
		recorder: events.NewRecorder(),
		cache:    cache.NewMemoryCache(),
	}
	log := logger.NewNop()
	createAuthor := authorusecase.NewCreateAuthorUseCase(f.authors, f.recorder, log)
	updateAuthor := authorusecase.NewUpdateAuthorUseCase(f.authors, log)
	f.create = bookusecase.NewCreateBookUseCase(f.books, f.authors, service.DefaultPublishPolicy(), f.recorder, log)
	f.svc = NewCatalogService(
		createAuthor, updateAuthor,
		f.authors, f.books,
		service.NewRoyaltyCalculator(service.DefaultRoyaltyConfig()),
		f.recorder, f.cache, log,
	)
	return f
}

func (f *fixture) register(t *testing.T, first, last, email string) uuid.UUID {
	t.Helper()
	result := f.svc.RegisterAuthorWithOnboarding(context.Background(), author.CreateAuthorCommand{
		FirstName: first,
		LastName:  last,
		Email:     email,
	})
	require.True(t, result.Success, "errors: %v", result.Errors)
	return *result.AuthorID
}

func TestRegisterAuthorWithOnboarding(t *testing.T) {
	f := newFixture(t)
	id := f.register(t, "John", "Doe", "john@example.com")

	require.Len(t, f.recorder.AuthorWelcome, 1)
	assert.Equal(t, id, f.recorder.AuthorWelcome[0].AuthorID)
	assert.Equal(t, "john@example.com", f.recorder.AuthorWelcome[0].Email)

	// Profile cache was warmed.
	var cached map[string]interface{}
	found, err := f.cache.Get(context.Background(), "author:"+id.String(), &cached)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestRegisterAuthorOnboardingSideEffectsAreBestEffort(t *testing.T) {
	f := newFixture(t)
	f.recorder.FailWith = errors.New("queue down")

	result := f.svc.RegisterAuthorWithOnboarding(context.Background(), author.CreateAuthorCommand{
		FirstName: "John",
		LastName:  "Doe",
	})
	// Publishing failed for both created and welcome events, yet the
	// registration itself still succeeds.
	assert.True(t, result.Success)
}

func TestBulkUpdateAuthorsNeverAborts(t *testing.T) {
	f := newFixture(t)
	first := f.register(t, "John", "Doe", "")
	second := f.register(t, "Jane", "Doe", "")
	missing := uuid.New()

	bio := "a perfectly valid biography"
	result := f.svc.BulkUpdateAuthors(context.Background(), []author.UpdateAuthorCommand{
		{ID: first, Bio: &bio},
		{ID: missing, Bio: &bio},
		{ID: second, Bio: &bio},
	})

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.FailedCount)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, missing, result.Failures[0].AuthorID)
	assert.Equal(t, author.ErrAuthorNotFound.Error(), result.Failures[0].Reason)
}

func TestSearchAuthorsPagination(t *testing.T) {
	f := newFixture(t)
	f.register(t, "Alice", "Adams", "")
	f.register(t, "Brian", "Brown", "")
	f.register(t, "Carol", "Clark", "")

	page, err := f.svc.SearchAuthors(context.Background(), author.Filter{
		Limit:  2,
		SortBy: "created_at",
		Order:  "ASC",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Authors, 2)

	// Out-of-range limits collapse to the bounds.
	page, err = f.svc.SearchAuthors(context.Background(), author.Filter{Limit: 10000, Offset: -5})
	require.NoError(t, err)
	assert.Equal(t, maxSearchLimit, page.Limit)
	assert.Equal(t, 0, page.Offset)

	page, err = f.svc.SearchAuthors(context.Background(), author.Filter{})
	require.NoError(t, err)
	assert.Equal(t, defaultSearchLimit, page.Limit)
}

func TestGetAuthorDashboard(t *testing.T) {
	f := newFixture(t)
	id := f.register(t, "John", "Doe", "")

	created := f.create.Execute(context.Background(), book.CreateBookCommand{
		Title:    "Bestseller",
		ISBN:     "978-0000000301",
		AuthorID: id,
		Price:    "20.00",
		Currency: "USD",
	})
	require.True(t, created.Success)

	sales := map[uuid.UUID]int{*created.BookID: 1500}
	dashboard, err := f.svc.GetAuthorDashboard(context.Background(), id, sales)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", dashboard.FullName)
	assert.Equal(t, 1, dashboard.TotalBooks)
	assert.Equal(t, 0, dashboard.PublishedBooks)
	assert.Equal(t, 1500, dashboard.TotalUnitsSold)
	assert.Equal(t, "4500.00 USD", dashboard.ProjectedEarned)

	// Second call is served from cache.
	again, err := f.svc.GetAuthorDashboard(context.Background(), id, nil)
	require.NoError(t, err)
	assert.Equal(t, dashboard.ProjectedEarned, again.ProjectedEarned)
	assert.Equal(t, dashboard.GeneratedAt.Unix(), again.GeneratedAt.Unix())
}

func TestGetAuthorDashboardUnknownAuthor(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetAuthorDashboard(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}
