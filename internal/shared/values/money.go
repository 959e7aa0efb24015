package values

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyRegex = regexp.MustCompile(`^[A-Za-z]{3}$`)

// Money is a value object pairing a decimal amount with a 3-letter
// currency code. Amounts are rounded to 2 decimal places at
// construction. All arithmetic returns a new instance; operations
// across mismatched currencies fail with CurrencyMismatchError.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney creates a validated Money. The currency code is uppercased.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	currency = strings.TrimSpace(currency)
	if !currencyRegex.MatchString(currency) {
		return Money{}, NewValidationError("currency must be a 3-letter code")
	}
	return Money{
		amount:   amount.Round(2),
		currency: strings.ToUpper(currency),
	}, nil
}

// NewMoneyFromString parses a decimal string amount, e.g. "19.99".
func NewMoneyFromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, NewValidationError("invalid money amount")
	}
	return NewMoney(d, currency)
}

// Zero returns a zero amount in the given currency. Panics on an
// invalid currency code; use NewMoney when the code is untrusted.
func Zero(currency string) Money {
	m, err := NewMoney(decimal.Zero, currency)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }
func (m Money) IsNegative() bool        { return m.amount.IsNegative() }

func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, &CurrencyMismatchError{Left: m.currency, Right: other.currency}
	}
	return Money{amount: m.amount.Add(other.amount).Round(2), currency: m.currency}, nil
}

func (m Money) Sub(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, &CurrencyMismatchError{Left: m.currency, Right: other.currency}
	}
	return Money{amount: m.amount.Sub(other.amount).Round(2), currency: m.currency}, nil
}

func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor).Round(2), currency: m.currency}
}

func (m Money) Divide(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, ErrDivisionByZero
	}
	return Money{amount: m.amount.DivRound(divisor, 2), currency: m.currency}, nil
}

// Cmp compares amounts: -1 if m < other, 0 if equal, 1 if m > other.
func (m Money) Cmp(other Money) (int, error) {
	if m.currency != other.currency {
		return 0, &CurrencyMismatchError{Left: m.currency, Right: other.currency}
	}
	return m.amount.Cmp(other.amount), nil
}

func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}

type moneyJSON struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount.StringFixed(2), Currency: m.currency})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewMoneyFromString(raw.Amount, raw.Currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
