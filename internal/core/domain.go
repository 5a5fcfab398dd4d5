package core

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind tells income from expense. The values are the ones the REST API speaks.
type Kind string

const (
	KindIncome  Kind = "INGRESO"
	KindExpense Kind = "GASTO"
)

type (
	User struct {
		ID               string
		Handle           string
		Email            string
		TransactionCount int
		CategoryCount    int
	}

	Category struct {
		ID     string
		Name   string
		UserID string
	}

	Transaction struct {
		ID           string
		Kind         Kind
		CategoryID   string
		CategoryName string
		Description  string
		Date         time.Time
		Amount       decimal.Decimal
		UserID       string
	}

	// Summary holds totals over a set of transactions, optionally for a period.
	Summary struct {
		TotalIncome  decimal.Decimal
		TotalExpense decimal.Decimal
		Balance      decimal.Decimal
		IncomeCount  int
		ExpenseCount int
		Period       string
	}

	// Snapshot is everything one dashboard load brings back.
	Snapshot struct {
		Categories   []Category
		Transactions []Transaction
		Summary      Summary
	}
)

var (
	ErrInvalidKind   = errors.New("invalid transaction kind")
	ErrInvalidAmount = errors.New("invalid amount")
)

// ParseKind accepts the wire names and their English aliases, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INGRESO", "INCOME":
		return KindIncome, nil
	case "GASTO", "EXPENSE":
		return KindExpense, nil
	}
	return "", ErrInvalidKind
}

// Label is the display name of the kind.
func (k Kind) Label() string {
	switch k {
	case KindIncome:
		return "Ingreso"
	case KindExpense:
		return "Gasto"
	}
	return string(k)
}

// Signed returns the amount with the sign it contributes to a balance.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == KindExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Equal compares summaries by value. Decimals compare numerically.
func (s Summary) Equal(o Summary) bool {
	return s.TotalIncome.Equal(o.TotalIncome) &&
		s.TotalExpense.Equal(o.TotalExpense) &&
		s.Balance.Equal(o.Balance) &&
		s.IncomeCount == o.IncomeCount &&
		s.ExpenseCount == o.ExpenseCount &&
		s.Period == o.Period
}

// Equal compares transactions field by field.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Kind == o.Kind &&
		t.CategoryID == o.CategoryID &&
		t.CategoryName == o.CategoryName &&
		t.Description == o.Description &&
		t.Date.Equal(o.Date) &&
		t.Amount.Equal(o.Amount) &&
		t.UserID == o.UserID
}

// Equal reports whether two snapshots hold the same data in the same order.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.Summary.Equal(o.Summary) &&
		slices.Equal(s.Categories, o.Categories) &&
		slices.EqualFunc(s.Transactions, o.Transactions, Transaction.Equal)
}

// Clone returns a snapshot that shares no slices with s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Categories:   slices.Clone(s.Categories),
		Transactions: slices.Clone(s.Transactions),
		Summary:      s.Summary,
	}
}
