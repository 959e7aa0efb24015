package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	bookmodel "bookcatalog-core/internal/domains/book/model"
)

func TestCalculateReorderPoint(t *testing.T) {
	// 60 units in 30 days: 2/day * 14 days * 1.5 = 42.
	assert.Equal(t, 42, CalculateReorderPoint(60, 14))

	// 31 units: 31/30 * 14 * 1.5 = 21.7, rounded up.
	assert.Equal(t, 22, CalculateReorderPoint(31, 14))

	// Slow movers keep the minimum buffer.
	assert.Equal(t, 5, CalculateReorderPoint(0, 14))
	assert.Equal(t, 5, CalculateReorderPoint(-10, 14))

	// Non-positive lead time falls back to the default.
	assert.Equal(t, 42, CalculateReorderPoint(60, 0))
}

func TestNeedsReorder(t *testing.T) {
	author := newTestAuthor(t)
	b := newTestBook(t, author.ID, "978-3000000001", "10.00")
	b.StockQuantity = 42

	assert.True(t, NeedsReorder(b, 60, 14))

	b.StockQuantity = 43
	assert.False(t, NeedsReorder(b, 60, 14))

	b.Deactivate()
	b.StockQuantity = 0
	assert.False(t, NeedsReorder(b, 60, 14))

	assert.False(t, NeedsReorder(nil, 60, 14))
}

func TestValidateISBNUniqueness(t *testing.T) {
	author := newTestAuthor(t)
	existing := newTestBook(t, author.ID, "978-4000000001", "10.00")
	books := []*bookmodel.Book{existing, nil}

	unique, title := ValidateISBNUniqueness("978-4000000001", books, uuid.Nil)
	assert.False(t, unique)
	assert.Equal(t, existing.Title.String(), title)

	unique, title = ValidateISBNUniqueness("978-4000000002", books, uuid.Nil)
	assert.True(t, unique)
	assert.Empty(t, title)

	// A book never conflicts with itself.
	unique, _ = ValidateISBNUniqueness("978-4000000001", books, existing.ID)
	assert.True(t, unique)
}
