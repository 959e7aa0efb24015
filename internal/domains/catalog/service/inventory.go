package service

import (
	"math"

	"github.com/google/uuid"

	bookmodel "bookcatalog-core/internal/domains/book/model"
)

const (
	// DefaultLeadTimeDays is the assumed supplier lead time.
	DefaultLeadTimeDays = 14

	reorderSafetyFactor = 1.5
	minReorderPoint     = 5
)

// CalculateReorderPoint derives the stock level at which a book should
// be reordered from its trailing 30-day sales. The result never drops
// below the minimum, so slow movers still keep a small buffer.
func CalculateReorderPoint(last30DaysSales, leadTimeDays int) int {
	if leadTimeDays <= 0 {
		leadTimeDays = DefaultLeadTimeDays
	}
	if last30DaysSales < 0 {
		last30DaysSales = 0
	}

	avgDaily := float64(last30DaysSales) / 30.0
	point := int(math.Ceil(avgDaily * float64(leadTimeDays) * reorderSafetyFactor))
	if point < minReorderPoint {
		return minReorderPoint
	}
	return point
}

// NeedsReorder reports whether the book's current stock has fallen to
// or below its reorder point. Inactive books are never reordered.
func NeedsReorder(book *bookmodel.Book, last30DaysSales, leadTimeDays int) bool {
	if book == nil || !book.IsActive {
		return false
	}
	return book.StockQuantity <= CalculateReorderPoint(last30DaysSales, leadTimeDays)
}

// ValidateISBNUniqueness scans the given books for one that already
// carries the isbn, skipping excludeID so an entity never conflicts
// with itself. The first match wins; its title is returned so callers
// can name the conflict.
func ValidateISBNUniqueness(isbn string, existingBooks []*bookmodel.Book, excludeID uuid.UUID) (bool, string) {
	for _, b := range existingBooks {
		if b == nil || b.ID == excludeID {
			continue
		}
		if b.ISBN.String() == isbn {
			return false, b.Title.String()
		}
	}
	return true, ""
}
