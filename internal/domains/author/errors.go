package author

import "errors"

var (
	// Business Rule Errors
	ErrAuthorNotFound = errors.New("author not found")
	ErrEmailTaken     = errors.New("email already in use")
	ErrAuthorInactive = errors.New("author is inactive")

	// Database Errors
	ErrDatabaseQuery = errors.New("database query error")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrEmailTaken):
		return "EMAIL_TAKEN"
	case errors.Is(err, ErrAuthorInactive):
		return "AUTHOR_INACTIVE"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return 404
	case errors.Is(err, ErrEmailTaken):
		return 409
	case errors.Is(err, ErrAuthorInactive):
		return 422
	default:
		return 500
	}
}
