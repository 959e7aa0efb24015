package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-core/internal/domains/author"
	authorrepo "bookcatalog-core/internal/domains/author/repository"
	authorusecase "bookcatalog-core/internal/domains/author/usecase"
	"bookcatalog-core/internal/domains/book"
	"bookcatalog-core/internal/domains/book/repository"
	"bookcatalog-core/internal/domains/catalog/service"
	"bookcatalog-core/internal/events"
	"bookcatalog-core/pkg/logger"
)

type createBookFixture struct {
	books    repository.Repository
	authors  authorrepo.Repository
	recorder *events.Recorder
	uc       *CreateBookUseCase
	authorID uuid.UUID
}

func newCreateBookFixture(t *testing.T) *createBookFixture {
	t.Helper()
	f := &createBookFixture{
		books:    repository.NewMemoryRepository(),
		authors:  authorrepo.NewMemoryRepository(),
		recorder: events.NewRecorder(),
	}
	f.uc = NewCreateBookUseCase(f.books, f.authors, service.DefaultPublishPolicy(), f.recorder, logger.NewNop())

	create := authorusecase.NewCreateAuthorUseCase(f.authors, events.NewRecorder(), logger.NewNop())
	result := create.Execute(context.Background(), author.CreateAuthorCommand{
		FirstName: "John",
		LastName:  "Doe",
	})
	require.True(t, result.Success)
	f.authorID = *result.AuthorID
	return f
}

func TestCreateBookEndToEnd(t *testing.T) {
	f := newCreateBookFixture(t)

	result := f.uc.Execute(context.Background(), book.CreateBookCommand{
		Title:        "The Go Programming Language",
		ISBN:         "978-0134190440",
		AuthorID:     f.authorID,
		Price:        "39.99",
		Currency:     "USD",
		InitialStock: 20,
	})
	require.True(t, result.Success, "errors: %v", result.Errors)
	require.NotNil(t, result.BookID)

	saved, err := f.books.FindByID(context.Background(), *result.BookID)
	require.NoError(t, err)
	assert.Equal(t, f.authorID, saved.AuthorID)
	assert.Equal(t, 20, saved.StockQuantity)
	assert.Equal(t, "39.99 USD", saved.Price.String())

	require.Len(t, f.recorder.BookCreated, 1)
	assert.Equal(t, saved.ID, f.recorder.BookCreated[0].BookID)
}

func TestCreateBookDuplicateISBN(t *testing.T) {
	f := newCreateBookFixture(t)

	cmd := book.CreateBookCommand{
		Title:    "First Edition",
		ISBN:     "978-0134190440",
		AuthorID: f.authorID,
		Price:    "10.00",
		Currency: "USD",
	}
	require.True(t, f.uc.Execute(context.Background(), cmd).Success)

	cmd.Title = "Second Edition"
	result := f.uc.Execute(context.Background(), cmd)
	assert.False(t, result.Success)
	assert.Equal(t, book.ErrISBNTaken.Error(), result.Message)
}

func TestCreateBookUnknownAuthor(t *testing.T) {
	f := newCreateBookFixture(t)

	result := f.uc.Execute(context.Background(), book.CreateBookCommand{
		Title:    "Orphan Book",
		ISBN:     "978-0134190441",
		AuthorID: uuid.New(),
		Price:    "10.00",
		Currency: "USD",
	})
	assert.False(t, result.Success)
	assert.Equal(t, author.ErrAuthorNotFound.Error(), result.Message)
}

func TestCreateBookInactiveAuthor(t *testing.T) {
	f := newCreateBookFixture(t)

	owner, err := f.authors.FindByID(context.Background(), f.authorID)
	require.NoError(t, err)
	owner.Deactivate()
	_, err = f.authors.Save(context.Background(), owner)
	require.NoError(t, err)

	result := f.uc.Execute(context.Background(), book.CreateBookCommand{
		Title:    "Posthumous",
		ISBN:     "978-0134190442",
		AuthorID: f.authorID,
		Price:    "10.00",
		Currency: "USD",
	})
	assert.False(t, result.Success)
	assert.Equal(t, author.ErrAuthorInactive.Error(), result.Message)
}

func TestCreateBookPublishPolicyEnforced(t *testing.T) {
	f := newCreateBookFixture(t)

	// Two books already published in the target year block a third.
	year := time.Now().UTC().Year()
	for i, isbn := range []string{"978-0000000101", "978-0000000102"} {
		date := time.Date(year, time.Month(i+1), 10, 0, 0, 0, 0, time.UTC)
		seedPublishedBook(t, f, isbn, date)
	}

	proposed := time.Date(year, 11, 1, 0, 0, 0, 0, time.UTC)
	result := f.uc.Execute(context.Background(), book.CreateBookCommand{
		Title:           "One Too Many",
		ISBN:            "978-0000000103",
		AuthorID:        f.authorID,
		Price:           "10.00",
		Currency:        "USD",
		PublicationDate: &proposed,
	})
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "already published 2 books")
}

func TestCreateBookValidation(t *testing.T) {
	f := newCreateBookFixture(t)

	result := f.uc.Execute(context.Background(), book.CreateBookCommand{
		Title:    "",
		ISBN:     "123-bad",
		Price:    "",
		Currency: "DOLLARS",
	})
	assert.False(t, result.Success)
	assert.Equal(t, "validation failed", result.Message)
	assert.NotEmpty(t, result.Errors)
}

func seedPublishedBook(t *testing.T, f *createBookFixture, isbn string, date time.Time) {
	t.Helper()
	result := f.uc.Execute(context.Background(), book.CreateBookCommand{
		Title:    "Seed " + isbn,
		ISBN:     isbn,
		AuthorID: f.authorID,
		Price:    "10.00",
		Currency: "USD",
	})
	require.True(t, result.Success, "errors: %v", result.Errors)

	saved, err := f.books.FindByID(context.Background(), *result.BookID)
	require.NoError(t, err)
	saved.PublicationDate = &date
	_, err = f.books.Save(context.Background(), saved)
	require.NoError(t, err)
}
