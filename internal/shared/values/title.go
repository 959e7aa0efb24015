package values

import (
	"encoding/json"
	"strings"
)

const MaxTitleLength = 500

// BookTitle is a value object for a non-empty, trimmed book title.
type BookTitle struct {
	value string
}

func NewBookTitle(value string) (BookTitle, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return BookTitle{}, NewValidationError("title cannot be empty")
	}
	if len(value) > MaxTitleLength {
		return BookTitle{}, NewValidationError("title exceeds maximum length")
	}
	return BookTitle{value: value}, nil
}

func (t BookTitle) String() string { return t.value }
func (t BookTitle) IsZero() bool   { return t.value == "" }

func (t BookTitle) Equals(other BookTitle) bool {
	return t.value == other.value
}

func (t BookTitle) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.value)
}

func (t *BookTitle) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewBookTitle(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
