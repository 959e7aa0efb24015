package values

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount, currency string) Money {
	t.Helper()
	m, err := NewMoneyFromString(amount, currency)
	require.NoError(t, err)
	return m
}

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.RequireFromString("19.999"), "usd")
	require.NoError(t, err)
	assert.Equal(t, "20.00", m.Amount().StringFixed(2))
	assert.Equal(t, "USD", m.Currency())

	_, err = NewMoney(decimal.Zero, "US")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	_, err = NewMoney(decimal.Zero, "12$")
	assert.Error(t, err)
}

func TestMoneyAdd(t *testing.T) {
	a := mustMoney(t, "10.50", "USD")
	b := mustMoney(t, "4.25", "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Equals(mustMoney(t, "14.75", "USD")))

	// Operands are untouched.
	assert.Equal(t, "10.50 USD", a.String())

	_, err = a.Add(mustMoney(t, "1.00", "EUR"))
	var mismatch *CurrencyMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "USD", mismatch.Left)
	assert.Equal(t, "EUR", mismatch.Right)
}

func TestMoneySub(t *testing.T) {
	a := mustMoney(t, "10.00", "USD")
	diff, err := a.Sub(mustMoney(t, "2.50", "USD"))
	require.NoError(t, err)
	assert.Equal(t, "7.50 USD", diff.String())

	_, err = a.Sub(mustMoney(t, "1.00", "GBP"))
	assert.Error(t, err)
}

func TestMoneyMultiplyDivide(t *testing.T) {
	price := mustMoney(t, "20.00", "USD")

	total := price.Multiply(decimal.NewFromInt(3))
	assert.Equal(t, "60.00 USD", total.String())

	half, err := price.Divide(decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.Equal(t, "10.00 USD", half.String())

	_, err = price.Divide(decimal.Zero)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestMoneyCmp(t *testing.T) {
	a := mustMoney(t, "5.00", "USD")
	b := mustMoney(t, "7.00", "USD")

	cmp, err := a.Cmp(b)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	_, err = a.Cmp(mustMoney(t, "5.00", "JPY"))
	assert.Error(t, err)
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := mustMoney(t, "42.10", "EUR")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"42.10","currency":"EUR"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}
