package values

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

const (
	MinNamePartLength = 2
	MaxNamePartLength = 50
)

// Letters (any script), spaces, hyphens and apostrophes.
var namePartRegex = regexp.MustCompile(`^[\p{L}]+(?:[ '\-][\p{L}]+)*$`)

// PersonName is a value object for a person's name.
// Immutable, compared by value.
type PersonName struct {
	first  string
	middle string
	last   string
}

// NewPersonName creates a validated PersonName. Middle is optional.
func NewPersonName(first, middle, last string) (PersonName, error) {
	first = strings.TrimSpace(first)
	middle = strings.TrimSpace(middle)
	last = strings.TrimSpace(last)

	if err := validateNamePart("first name", first); err != nil {
		return PersonName{}, err
	}
	if middle != "" {
		if err := validateNamePart("middle name", middle); err != nil {
			return PersonName{}, err
		}
	}
	if err := validateNamePart("last name", last); err != nil {
		return PersonName{}, err
	}

	return PersonName{first: first, middle: middle, last: last}, nil
}

func validateNamePart(field, value string) error {
	if value == "" {
		return NewValidationError(fmt.Sprintf("%s cannot be empty", field))
	}
	if len(value) < MinNamePartLength || len(value) > MaxNamePartLength {
		return NewValidationError(fmt.Sprintf("%s must be %d-%d characters", field, MinNamePartLength, MaxNamePartLength))
	}
	if !namePartRegex.MatchString(value) {
		return NewValidationError(fmt.Sprintf("%s may only contain letters, spaces, hyphens and apostrophes", field))
	}
	return nil
}

func (n PersonName) First() string  { return n.first }
func (n PersonName) Middle() string { return n.middle }
func (n PersonName) Last() string   { return n.last }
func (n PersonName) IsZero() bool   { return n.first == "" && n.last == "" }

// FullName returns "First Last", or "First Middle Last" when a middle
// name is present. Computed on demand, not stored.
func (n PersonName) FullName() string {
	if n.middle != "" {
		return n.first + " " + n.middle + " " + n.last
	}
	return n.first + " " + n.last
}

// DisplayName returns "Last, First".
func (n PersonName) DisplayName() string {
	return n.last + ", " + n.first
}

// Initials returns the uppercased first letter of each part, e.g. "J.D.".
func (n PersonName) Initials() string {
	var b strings.Builder
	for _, part := range []string{n.first, n.middle, n.last} {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(".")
	}
	return b.String()
}

func (n PersonName) Equals(other PersonName) bool {
	return n.first == other.first && n.middle == other.middle && n.last == other.last
}

type personNameJSON struct {
	First  string `json:"first"`
	Middle string `json:"middle,omitempty"`
	Last   string `json:"last"`
}

func (n PersonName) MarshalJSON() ([]byte, error) {
	return json.Marshal(personNameJSON{First: n.first, Middle: n.middle, Last: n.last})
}

func (n *PersonName) UnmarshalJSON(data []byte) error {
	var raw personNameJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewPersonName(raw.First, raw.Middle, raw.Last)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
