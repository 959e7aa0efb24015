package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	authormodel "bookcatalog-core/internal/domains/author/model"
	bookmodel "bookcatalog-core/internal/domains/book/model"
	"bookcatalog-core/internal/shared/values"
)

// RoyaltyConfig tunes the royalty computation. Every knob is explicit
// so tests and callers never depend on hidden defaults.
type RoyaltyConfig struct {
	BaseRate            decimal.Decimal
	BestsellerBonus     decimal.Decimal
	BestsellerThreshold int
	MaxRate             decimal.Decimal
	DefaultCurrency     string
}

// DefaultRoyaltyConfig returns the standard contract terms.
func DefaultRoyaltyConfig() RoyaltyConfig {
	return RoyaltyConfig{
		BaseRate:            decimal.NewFromFloat(0.10),
		BestsellerBonus:     decimal.NewFromFloat(0.05),
		BestsellerThreshold: 1000,
		MaxRate:             decimal.NewFromFloat(0.20),
		DefaultCurrency:     "USD",
	}
}

// RoyaltyCalculator is a stateless domain service. It works on the
// entities it is handed and never touches a repository.
type RoyaltyCalculator struct {
	cfg RoyaltyConfig
}

func NewRoyaltyCalculator(cfg RoyaltyConfig) *RoyaltyCalculator {
	return &RoyaltyCalculator{cfg: cfg}
}

// Calculate sums per-book royalties for one author.
//
// Per book: price times units sold times the effective rate. The rate
// starts at the override when given, otherwise the base rate, and gains
// the bestseller bonus once units pass the threshold, capped at the
// maximum. Inactive books and books with no recorded sales contribute
// nothing. An inactive author earns zero outright.
//
// The total carries the currency of the contributing book prices; mixed
// currencies surface as a CurrencyMismatchError from Add. When nothing
// contributes, the zero total is denominated in the default currency.
func (c *RoyaltyCalculator) Calculate(author *authormodel.Author, books []*bookmodel.Book, salesByBookID map[uuid.UUID]int, rateOverride *decimal.Decimal) (values.Money, error) {
	zero := values.Zero(c.cfg.DefaultCurrency)

	if author == nil || !author.IsActive {
		return zero, nil
	}

	baseRate := c.cfg.BaseRate
	if rateOverride != nil {
		baseRate = *rateOverride
	}

	var total *values.Money
	for _, b := range books {
		if b == nil || !b.IsActive {
			continue
		}
		units := salesByBookID[b.ID]
		if units <= 0 {
			continue
		}

		rate := baseRate
		if units > c.cfg.BestsellerThreshold {
			rate = rate.Add(c.cfg.BestsellerBonus)
			if rate.GreaterThan(c.cfg.MaxRate) {
				rate = c.cfg.MaxRate
			}
		}

		revenue := b.Price.Multiply(decimal.NewFromInt(int64(units)))
		royalty := revenue.Multiply(rate)

		if total == nil {
			total = &royalty
			continue
		}
		sum, err := total.Add(royalty)
		if err != nil {
			return values.Money{}, err
		}
		total = &sum
	}

	if total == nil {
		return zero, nil
	}
	return *total, nil
}
