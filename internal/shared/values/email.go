package values

import (
	"encoding/json"
	"regexp"
	"strings"
)

const (
	MaxEmailLength       = 254
	MaxEmailLocalLength  = 64
	MaxEmailDomainLength = 253
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9](?:[a-zA-Z0-9\-]*[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9\-]*[a-zA-Z0-9])?)+$`)

// EmailAddress is a value object for a normalized (lowercase) email address.
type EmailAddress struct {
	value string
}

// NewEmailAddress creates a validated EmailAddress, normalized to lowercase.
func NewEmailAddress(value string) (EmailAddress, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return EmailAddress{}, NewValidationError("email cannot be empty")
	}
	if len(value) > MaxEmailLength {
		return EmailAddress{}, NewValidationError("email exceeds maximum length")
	}
	at := strings.LastIndex(value, "@")
	if at <= 0 || at == len(value)-1 {
		return EmailAddress{}, NewValidationError("invalid email format")
	}
	if len(value[:at]) > MaxEmailLocalLength {
		return EmailAddress{}, NewValidationError("email local part exceeds maximum length")
	}
	if len(value[at+1:]) > MaxEmailDomainLength {
		return EmailAddress{}, NewValidationError("email domain exceeds maximum length")
	}
	if !emailRegex.MatchString(value) {
		return EmailAddress{}, NewValidationError("invalid email format")
	}
	return EmailAddress{value: value}, nil
}

func (e EmailAddress) String() string { return e.value }
func (e EmailAddress) IsZero() bool   { return e.value == "" }

func (e EmailAddress) LocalPart() string {
	return e.value[:strings.LastIndex(e.value, "@")]
}

func (e EmailAddress) Domain() string {
	return e.value[strings.LastIndex(e.value, "@")+1:]
}

func (e EmailAddress) Equals(other EmailAddress) bool {
	return e.value == other.value
}

func (e EmailAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.value)
}

func (e *EmailAddress) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewEmailAddress(raw)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
