package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-core/internal/shared/values"
)

func TestSuggestPageTiers(t *testing.T) {
	author := newTestAuthor(t)
	suggester := NewPriceSuggester(DefaultPricingConfig())

	cases := []struct {
		name  string
		pages int
		want  string
	}{
		{"thick", 600, "22.49 USD"},  // 14.99 * 1.5
		{"medium", 350, "17.99 USD"}, // 14.99 * 1.2
		{"standard", 250, "14.99 USD"},
		{"thin", 150, "11.99 USD"}, // 14.99 * 0.8
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBook(t, author.ID, "978-2000000001", "10.00")
			pages := tc.pages
			b.Pages = &pages

			price, err := suggester.Suggest(b, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, price.String())
		})
	}
}

func TestSuggestGenreMultiplier(t *testing.T) {
	author := newTestAuthor(t)
	suggester := NewPriceSuggester(DefaultPricingConfig())

	b := newTestBook(t, author.ID, "978-2000000002", "10.00")
	genre := "Technical"
	b.Genre = &genre

	price, err := suggester.Suggest(b, nil)
	require.NoError(t, err)
	assert.Equal(t, "20.99 USD", price.String()) // 14.99 * 1.4

	unknown := "Unknown Genre"
	b.Genre = &unknown
	price, err = suggester.Suggest(b, nil)
	require.NoError(t, err)
	assert.Equal(t, "14.99 USD", price.String())
}

func TestSuggestClampsToCompetitorBand(t *testing.T) {
	author := newTestAuthor(t)
	suggester := NewPriceSuggester(DefaultPricingConfig())
	b := newTestBook(t, author.ID, "978-2000000003", "10.00")

	competitors := []values.Money{
		mustUSD(t, "30.00"),
		mustUSD(t, "50.00"),
	}
	// Mean 40; the 14.99 heuristic is lifted to the lower bound 32.
	price, err := suggester.Suggest(b, competitors)
	require.NoError(t, err)
	assert.Equal(t, "32.00 USD", price.String())

	cheap := []values.Money{mustUSD(t, "5.00")}
	// Mean 5; 14.99 is pulled down to the upper bound 6.
	price, err = suggester.Suggest(b, cheap)
	require.NoError(t, err)
	assert.Equal(t, "6.00 USD", price.String())
}

func TestSuggestMixedCompetitorCurrencyFails(t *testing.T) {
	author := newTestAuthor(t)
	suggester := NewPriceSuggester(DefaultPricingConfig())
	b := newTestBook(t, author.ID, "978-2000000004", "10.00")

	eur, err := values.NewMoneyFromString("20.00", "EUR")
	require.NoError(t, err)

	_, err = suggester.Suggest(b, []values.Money{eur})
	var mismatch *values.CurrencyMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func mustUSD(t *testing.T, amount string) values.Money {
	t.Helper()
	m, err := values.NewMoneyFromString(amount, "USD")
	require.NoError(t, err)
	return m
}
