package values

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmailAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "john@example.com", "john@example.com", false},
		{"normalized to lowercase", "John.Doe@Example.COM", "john.doe@example.com", false},
		{"trimmed", "  a@b.co  ", "a@b.co", false},
		{"plus tag", "john+tag@example.com", "john+tag@example.com", false},
		{"empty", "", "", true},
		{"no at sign", "example.com", "", true},
		{"no domain", "john@", "", true},
		{"no tld", "john@example", "", true},
		{"spaces inside", "jo hn@example.com", "", true},
		{"local part too long", strings.Repeat("a", 65) + "@example.com", "", true},
		{"total too long", strings.Repeat("a", 60) + "@" + strings.Repeat("b", 190) + ".example.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEmailAddress(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.String())
		})
	}
}

func TestEmailAddressParts(t *testing.T) {
	e, err := NewEmailAddress("john.doe@mail.example.com")
	require.NoError(t, err)

	assert.Equal(t, "john.doe", e.LocalPart())
	assert.Equal(t, "mail.example.com", e.Domain())
}

func TestEmailAddressEquality(t *testing.T) {
	a, _ := NewEmailAddress("John@example.com")
	b, _ := NewEmailAddress("john@EXAMPLE.com")

	assert.True(t, a.Equals(b))
}
