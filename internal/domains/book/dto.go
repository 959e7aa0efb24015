package book

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var isbnFormat = regexp.MustCompile(`^978-\d{10}$`)

// CreateBookCommand carries the primitive input for one book creation.
type CreateBookCommand struct {
	Title           string     `json:"title"`
	ISBN            string     `json:"isbn"`
	AuthorID        uuid.UUID  `json:"author_id"`
	Price           string     `json:"price"`
	Currency        string     `json:"currency"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
	Pages           *int       `json:"pages,omitempty"`
	Genre           *string    `json:"genre,omitempty"`
	InitialStock    int        `json:"initial_stock"`
}

func (c CreateBookCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 500),
		),
		validation.Field(&c.ISBN,
			validation.Required.Error("isbn is required"),
			validation.Match(isbnFormat).Error("isbn must match format 978-XXXXXXXXXX"),
		),
		validation.Field(&c.AuthorID, validation.By(requireUUID)),
		validation.Field(&c.Price, validation.Required.Error("price is required")),
		validation.Field(&c.Currency,
			validation.Required.Error("currency is required"),
			validation.Length(3, 3).Error("currency must be a 3-letter code"),
		),
		validation.Field(&c.InitialStock, validation.Min(0).Error("initial stock cannot be negative")),
	)
}

func requireUUID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("validation_required", "id is required")
	}
	return nil
}

// CreateBookResult is the uniform outcome shape reported to callers.
type CreateBookResult struct {
	BookID  *uuid.UUID `json:"book_id,omitempty"`
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Errors  []string   `json:"errors,omitempty"`
}

// AdjustStockCommand moves the stock counter. A positive Quantity adds
// stock, a negative one removes it.
type AdjustStockCommand struct {
	BookID   uuid.UUID `json:"book_id"`
	Quantity int       `json:"quantity"`
}

func (c AdjustStockCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BookID, validation.By(requireUUID)),
		validation.Field(&c.Quantity,
			validation.Required.Error("quantity cannot be zero"),
		),
	)
}

// AdjustStockResult reports the stock level after a successful move.
type AdjustStockResult struct {
	BookID        *uuid.UUID `json:"book_id,omitempty"`
	StockQuantity *int       `json:"stock_quantity,omitempty"`
	Success       bool       `json:"success"`
	Message       string     `json:"message"`
	Errors        []string   `json:"errors,omitempty"`
}

// Filter narrows and paginates repository searches. Filters are
// AND-combined.
type Filter struct {
	Query    string     `json:"query"`
	AuthorID *uuid.UUID `json:"author_id,omitempty"`
	Genre    string     `json:"genre,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
	SortBy   string     `json:"sort_by"`
	Order    string     `json:"order"`
}
