package values

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Bookland EAN prefix followed by 10 digits, e.g. "978-0123456789".
var isbnRegex = regexp.MustCompile(`^978-\d{10}$`)

// ISBN is a value object for a format-checked ISBN.
type ISBN struct {
	value string
}

func NewISBN(value string) (ISBN, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ISBN{}, NewValidationError("isbn cannot be empty")
	}
	if !isbnRegex.MatchString(value) {
		return ISBN{}, NewValidationError("isbn must match format 978-XXXXXXXXXX")
	}
	return ISBN{value: value}, nil
}

func (i ISBN) String() string { return i.value }
func (i ISBN) IsZero() bool   { return i.value == "" }

func (i ISBN) Equals(other ISBN) bool {
	return i.value == other.value
}

func (i ISBN) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.value)
}

func (i *ISBN) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewISBN(raw)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
