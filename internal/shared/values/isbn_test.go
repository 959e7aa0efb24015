package values

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewISBN(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "978-0123456789", false},
		{"trimmed", " 978-0123456789 ", false},
		{"empty", "", true},
		{"wrong prefix", "979-0123456789", true},
		{"too few digits", "978-012345678", true},
		{"too many digits", "978-01234567890", true},
		{"letters", "978-01234A6789", true},
		{"missing dash", "9780123456789", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, err := NewISBN(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "978-0123456789", i.String())
		})
	}
}

func TestNewBookTitle(t *testing.T) {
	title, err := NewBookTitle("  The Left Hand of Darkness  ")
	require.NoError(t, err)
	assert.Equal(t, "The Left Hand of Darkness", title.String())

	_, err = NewBookTitle("   ")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	_, err = NewBookTitle(strings.Repeat("x", MaxTitleLength+1))
	assert.Error(t, err)
}
