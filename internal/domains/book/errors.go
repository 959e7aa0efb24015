package book

import "errors"

var (
	// Business Rule Errors
	ErrBookNotFound = errors.New("book not found")
	ErrISBNTaken    = errors.New("isbn already registered")
	ErrBookInactive = errors.New("book is inactive")

	// Database Errors
	ErrDatabaseQuery = errors.New("database query error")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return "BOOK_NOT_FOUND"
	case errors.Is(err, ErrISBNTaken):
		return "ISBN_TAKEN"
	case errors.Is(err, ErrBookInactive):
		return "BOOK_INACTIVE"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return 404
	case errors.Is(err, ErrISBNTaken):
		return 409
	case errors.Is(err, ErrBookInactive):
		return 422
	default:
		return 500
	}
}
