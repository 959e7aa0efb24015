package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "bookcatalog-core/internal/domains/author/model"
	bookmodel "bookcatalog-core/internal/domains/book/model"
	"bookcatalog-core/internal/shared/values"
)

func newTestAuthor(t *testing.T) *authormodel.Author {
	t.Helper()
	name, err := values.NewPersonName("Jane", "", "Austen")
	require.NoError(t, err)
	a, err := authormodel.NewAuthor(name, nil, nil, nil, nil)
	require.NoError(t, err)
	return a
}

func newTestBook(t *testing.T, authorID uuid.UUID, isbn, price string) *bookmodel.Book {
	t.Helper()
	title, err := values.NewBookTitle("Test Title")
	require.NoError(t, err)
	parsedISBN, err := values.NewISBN(isbn)
	require.NoError(t, err)
	money, err := values.NewMoneyFromString(price, "USD")
	require.NoError(t, err)
	b, err := bookmodel.NewBook(title, parsedISBN, authorID, money, bookmodel.NewBookParams{})
	require.NoError(t, err)
	return b
}

func TestCalculateRoyaltyBestseller(t *testing.T) {
	author := newTestAuthor(t)
	book := newTestBook(t, author.ID, "978-0000000001", "20.00")
	calc := NewRoyaltyCalculator(DefaultRoyaltyConfig())

	// 1500 units passes the bestseller threshold: 10% + 5% = 15%.
	total, err := calc.Calculate(author, []*bookmodel.Book{book}, map[uuid.UUID]int{book.ID: 1500}, nil)
	require.NoError(t, err)
	assert.Equal(t, "4500.00 USD", total.String())
}

func TestCalculateRoyaltyInactiveAuthorIsZero(t *testing.T) {
	author := newTestAuthor(t)
	author.Deactivate()
	book := newTestBook(t, author.ID, "978-0000000002", "20.00")
	calc := NewRoyaltyCalculator(DefaultRoyaltyConfig())

	total, err := calc.Calculate(author, []*bookmodel.Book{book}, map[uuid.UUID]int{book.ID: 9999}, nil)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestCalculateRoyaltySkipsInactiveAndUnsoldBooks(t *testing.T) {
	author := newTestAuthor(t)
	sold := newTestBook(t, author.ID, "978-0000000003", "10.00")
	unsold := newTestBook(t, author.ID, "978-0000000004", "10.00")
	inactive := newTestBook(t, author.ID, "978-0000000005", "10.00")
	inactive.Deactivate()

	calc := NewRoyaltyCalculator(DefaultRoyaltyConfig())
	total, err := calc.Calculate(author,
		[]*bookmodel.Book{sold, unsold, inactive},
		map[uuid.UUID]int{sold.ID: 100, inactive.ID: 100}, nil)
	require.NoError(t, err)

	// Only the sold, active book contributes: 10 * 100 * 0.10.
	assert.Equal(t, "100.00 USD", total.String())
}

func TestCalculateRoyaltyOverrideCappedByMaxRate(t *testing.T) {
	author := newTestAuthor(t)
	book := newTestBook(t, author.ID, "978-0000000006", "10.00")
	calc := NewRoyaltyCalculator(DefaultRoyaltyConfig())

	override := decimal.NewFromFloat(0.18)
	total, err := calc.Calculate(author, []*bookmodel.Book{book}, map[uuid.UUID]int{book.ID: 2000}, &override)
	require.NoError(t, err)

	// 18% + 5% bonus would be 23%, capped at 20%: 10 * 2000 * 0.20.
	assert.Equal(t, "4000.00 USD", total.String())
}

func TestCalculateRoyaltyNoSalesUsesDefaultCurrency(t *testing.T) {
	author := newTestAuthor(t)
	calc := NewRoyaltyCalculator(DefaultRoyaltyConfig())

	total, err := calc.Calculate(author, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "0.00 USD", total.String())
}
