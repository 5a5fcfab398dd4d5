package http

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashify/internal/core"
)

func TestFormatter_Money(t *testing.T) {
	f, err := NewFormatter("en", "USD", time.UTC)
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"5", "$5.00"},
		{"1234.5", "$1,234.50"},
		{"-105", "-$105.00"},
		{"0.005", "$0.01"},
		{"-0.004", "$0.00"},
		{"12345678901234.57", "$12,345,678,901,234.57"},
		{"0.1", "$0.10"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Money(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestFormatter_MoneyUsesLocaleSeparators(t *testing.T) {
	f, err := NewFormatter("es", "USD", time.UTC)
	require.NoError(t, err)

	got := f.Money(decimal.RequireFromString("-1234567.891"))

	assert.True(t, strings.HasPrefix(got, "-"), got)
	assert.True(t, strings.HasSuffix(got, "1.234.567,89"), got)
}

func TestFormatter_DateUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	f, err := NewFormatter("es", "USD", loc)
	require.NoError(t, err)

	got := f.Date(time.Date(2024, 4, 2, 3, 30, 0, 0, time.UTC))

	assert.Equal(t, "01/04/2024 22:30", got)
}

func TestFormatter_SignedByKind(t *testing.T) {
	f, err := NewFormatter("en", "USD", time.UTC)
	require.NoError(t, err)
	signed := f.FuncMap()["signed"].(func(core.Transaction) string)

	in := core.Transaction{Kind: core.KindIncome, Amount: decimal.RequireFromString("10")}
	out := core.Transaction{Kind: core.KindExpense, Amount: decimal.RequireFromString("10")}

	assert.Equal(t, "+$10.00", signed(in))
	assert.Equal(t, "-$10.00", signed(out))
}

func TestNewFormatter_RejectsBadInput(t *testing.T) {
	_, err := NewFormatter("not a locale!", "USD", nil)
	assert.Error(t, err)

	_, err = NewFormatter("es", "DOLLARS", nil)
	assert.Error(t, err)
}
