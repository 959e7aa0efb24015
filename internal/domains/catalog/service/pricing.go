package service

import (
	"strings"

	"github.com/shopspring/decimal"

	bookmodel "bookcatalog-core/internal/domains/book/model"
	"bookcatalog-core/internal/shared/values"
)

// PricingConfig drives the price suggestion heuristic. GenreMultipliers
// keys are matched case-insensitively; unknown genres fall through at
// multiplier 1.
type PricingConfig struct {
	BasePrice        decimal.Decimal
	Currency         string
	GenreMultipliers map[string]decimal.Decimal
	CompetitorBand   decimal.Decimal
}

// DefaultPricingConfig returns the standard heuristic inputs.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		BasePrice: decimal.NewFromFloat(14.99),
		Currency:  "USD",
		GenreMultipliers: map[string]decimal.Decimal{
			"technical": decimal.NewFromFloat(1.4),
			"textbook":  decimal.NewFromFloat(1.3),
			"fiction":   decimal.NewFromFloat(1.0),
			"children":  decimal.NewFromFloat(0.7),
		},
		CompetitorBand: decimal.NewFromFloat(0.20),
	}
}

// PriceSuggester computes a recommended list price for a book.
type PriceSuggester struct {
	cfg PricingConfig
}

func NewPriceSuggester(cfg PricingConfig) *PriceSuggester {
	return &PriceSuggester{cfg: cfg}
}

// Suggest starts from the base price, scales by page-count tier and
// genre, then clamps within the competitor band around the mean of
// competitorPrices when any are given.
//
// Page tiers: above 500 pages x1.5, above 300 x1.2, below 200 x0.8.
func (s *PriceSuggester) Suggest(book *bookmodel.Book, competitorPrices []values.Money) (values.Money, error) {
	price := s.cfg.BasePrice

	if book != nil && book.Pages != nil {
		switch pages := *book.Pages; {
		case pages > 500:
			price = price.Mul(decimal.NewFromFloat(1.5))
		case pages > 300:
			price = price.Mul(decimal.NewFromFloat(1.2))
		case pages < 200:
			price = price.Mul(decimal.NewFromFloat(0.8))
		}
	}

	if book != nil && book.Genre != nil {
		if mult, ok := s.cfg.GenreMultipliers[strings.ToLower(*book.Genre)]; ok {
			price = price.Mul(mult)
		}
	}

	if len(competitorPrices) > 0 {
		mean, err := meanAmount(competitorPrices, s.cfg.Currency)
		if err != nil {
			return values.Money{}, err
		}
		lower := mean.Mul(decimal.NewFromInt(1).Sub(s.cfg.CompetitorBand))
		upper := mean.Mul(decimal.NewFromInt(1).Add(s.cfg.CompetitorBand))
		if price.LessThan(lower) {
			price = lower
		} else if price.GreaterThan(upper) {
			price = upper
		}
	}

	return values.NewMoney(price, s.cfg.Currency)
}

func meanAmount(prices []values.Money, currency string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range prices {
		if p.Currency() != currency {
			return decimal.Zero, &values.CurrencyMismatchError{Left: currency, Right: p.Currency()}
		}
		sum = sum.Add(p.Amount())
	}
	return sum.Div(decimal.NewFromInt(int64(len(prices)))), nil
}
