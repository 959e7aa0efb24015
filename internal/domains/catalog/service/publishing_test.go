package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	bookmodel "bookcatalog-core/internal/domains/book/model"
)

// Fixtures set the date directly so tests can build any timeline.
func publishedBook(t *testing.T, b *bookmodel.Book, date time.Time) *bookmodel.Book {
	t.Helper()
	b.PublicationDate = &date
	return b
}

func TestPublishCheckInactiveAuthor(t *testing.T) {
	author := newTestAuthor(t)
	author.Deactivate()

	ok, reason := DefaultPublishPolicy().Check(author, nil, nil)
	assert.False(t, ok)
	assert.Contains(t, reason, "not active")
}

func TestPublishCheckPerYearCap(t *testing.T) {
	author := newTestAuthor(t)
	proposed := time.Date(time.Now().UTC().Year(), 10, 1, 0, 0, 0, 0, time.UTC)

	// Two books already published this calendar year, far outside the
	// cooldown window relative to the proposed date.
	b1 := publishedBook(t, newTestBook(t, author.ID, "978-1000000001", "10.00"),
		time.Date(proposed.Year(), 1, 5, 0, 0, 0, 0, time.UTC))
	b2 := publishedBook(t, newTestBook(t, author.ID, "978-1000000002", "10.00"),
		time.Date(proposed.Year(), 2, 5, 0, 0, 0, 0, time.UTC))

	ok, reason := DefaultPublishPolicy().Check(author, []*bookmodel.Book{b1, b2}, &proposed)
	assert.False(t, ok)
	assert.Contains(t, reason, "already published 2 books")
}

func TestPublishCheckCooldown(t *testing.T) {
	author := newTestAuthor(t)
	now := time.Now().UTC()

	recent := publishedBook(t, newTestBook(t, author.ID, "978-1000000003", "10.00"),
		now.AddDate(0, 0, -30))

	ok, reason := DefaultPublishPolicy().Check(author, []*bookmodel.Book{recent}, &now)
	assert.False(t, ok)
	assert.Contains(t, reason, "wait 150 more days")
}

func TestPublishCheckUnpublishedPipelineCap(t *testing.T) {
	author := newTestAuthor(t)

	var books []*bookmodel.Book
	for i := 0; i < 5; i++ {
		books = append(books, newTestBook(t, author.ID, fmt.Sprintf("978-100000001%d", i), "10.00"))
	}

	ok, reason := DefaultPublishPolicy().Check(author, books, nil)
	assert.False(t, ok)
	assert.Contains(t, reason, "unpublished")
}

func TestPublishCheckAllowsCleanSlate(t *testing.T) {
	author := newTestAuthor(t)

	old := publishedBook(t, newTestBook(t, author.ID, "978-1000000004", "10.00"),
		time.Now().UTC().AddDate(-2, 0, 0))

	ok, reason := DefaultPublishPolicy().Check(author, []*bookmodel.Book{old}, nil)
	assert.True(t, ok)
	assert.Empty(t, reason)
}
