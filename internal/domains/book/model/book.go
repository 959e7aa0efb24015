package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"bookcatalog-core/internal/shared/audit"
	"bookcatalog-core/internal/shared/values"
)

// ErrInsufficientStock is an expected business outcome of RemoveStock,
// not a fault. The entity's stock is left unchanged when it occurs.
var ErrInsufficientStock = errors.New("insufficient stock")

// Book is an identity-bearing entity. AuthorID is a non-owning
// back-reference; the Author relationship is resolved through the
// repository layer, never via in-memory pointers.
type Book struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	Title           values.BookTitle `json:"title"`
	ISBN            values.ISBN      `json:"isbn"`
	AuthorID        uuid.UUID        `json:"author_id" db:"author_id"`
	PublicationDate *time.Time       `json:"publication_date,omitempty" db:"publication_date"`
	Pages           *int             `json:"pages,omitempty" db:"pages"`
	Genre           *string          `json:"genre,omitempty" db:"genre"`
	Price           values.Money     `json:"price"`
	StockQuantity   int              `json:"stock_quantity" db:"stock_quantity"`

	audit.Record
}

// NewBookParams groups the optional creation inputs.
type NewBookParams struct {
	PublicationDate *time.Time
	Pages           *int
	Genre           *string
	InitialStock    int
}

// NewBook validates creation-time invariants and returns a fully built
// Book, or a ValidationError before any instance exists.
func NewBook(title values.BookTitle, isbn values.ISBN, authorID uuid.UUID, price values.Money, params NewBookParams) (*Book, error) {
	if title.IsZero() {
		return nil, values.NewValidationError("book title is required")
	}
	if isbn.IsZero() {
		return nil, values.NewValidationError("isbn is required")
	}
	if authorID == uuid.Nil {
		return nil, values.NewValidationError("author id is required")
	}
	if price.IsNegative() {
		return nil, values.NewValidationError("price cannot be negative")
	}
	if err := validatePublicationDate(params.PublicationDate); err != nil {
		return nil, err
	}
	if params.Pages != nil && *params.Pages <= 0 {
		return nil, values.NewValidationError("page count must be positive")
	}
	if params.InitialStock < 0 {
		return nil, values.NewValidationError("initial stock cannot be negative")
	}

	return &Book{
		ID:              uuid.New(),
		Title:           title,
		ISBN:            isbn,
		AuthorID:        authorID,
		PublicationDate: params.PublicationDate,
		Pages:           params.Pages,
		Genre:           params.Genre,
		Price:           price,
		StockQuantity:   params.InitialStock,
		Record:          audit.NewRecord(),
	}, nil
}

// UpdatePrice replaces the price. The price never goes negative.
func (b *Book) UpdatePrice(price values.Money) error {
	if price.IsNegative() {
		return values.NewValidationError("price cannot be negative")
	}
	b.Price = price
	b.Touch()
	return nil
}

// AddStock increases the stock count by a positive quantity.
func (b *Book) AddStock(quantity int) error {
	if quantity <= 0 {
		return values.NewValidationError("quantity must be positive")
	}
	b.StockQuantity += quantity
	b.Touch()
	return nil
}

// RemoveStock decreases the stock count. Fails with
// ErrInsufficientStock, leaving the count unchanged, when more units
// are requested than available.
func (b *Book) RemoveStock(quantity int) error {
	if quantity <= 0 {
		return values.NewValidationError("quantity must be positive")
	}
	if quantity > b.StockQuantity {
		return ErrInsufficientStock
	}
	b.StockQuantity -= quantity
	b.Touch()
	return nil
}

// SetPublicationDate records the publication date; it cannot be in the
// future.
func (b *Book) SetPublicationDate(date time.Time) error {
	if err := validatePublicationDate(&date); err != nil {
		return err
	}
	b.PublicationDate = &date
	b.Touch()
	return nil
}

// IsAvailable is a derived predicate, not stored state.
func (b *Book) IsAvailable() bool {
	return b.IsActive && b.StockQuantity > 0
}

// IsPublished reports whether a publication date is recorded.
func (b *Book) IsPublished() bool {
	return b.PublicationDate != nil
}

func validatePublicationDate(date *time.Time) error {
	if date == nil {
		return nil
	}
	if date.After(time.Now().UTC()) {
		return values.NewValidationError("publication date cannot be in the future")
	}
	return nil
}
