package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"INGRESO", KindIncome, true},
		{"gasto", KindExpense, true},
		{" income ", KindIncome, true},
		{"Expense", KindExpense, true},
		{"TODOS", "", false},
		{"", "", false},
	}
	for i, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("case %d: ParseKind(%q) = %q, %v; want %q", i, tc.in, got, err, tc.want)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidKind) {
			t.Fatalf("case %d: ParseKind(%q) error = %v, want ErrInvalidKind", i, tc.in, err)
		}
	}
}

func TestTransactionSigned(t *testing.T) {
	amt := decimal.RequireFromString("12.50")
	if got := (Transaction{Kind: KindIncome, Amount: amt}).Signed(); !got.Equal(amt) {
		t.Fatalf("income signed = %s", got)
	}
	if got := (Transaction{Kind: KindExpense, Amount: amt}).Signed(); !got.Equal(amt.Neg()) {
		t.Fatalf("expense signed = %s", got)
	}
}

func TestSnapshotCloneIsIndependent(t *testing.T) {
	s := Snapshot{
		Categories: []Category{{ID: "1", Name: "Comida"}},
		Transactions: []Transaction{{
			ID: "2", Kind: KindExpense, CategoryID: "1", CategoryName: "Comida",
			Amount: decimal.RequireFromString("5"), Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
		Summary: Summary{TotalExpense: decimal.RequireFromString("5.00"), Balance: decimal.RequireFromString("-5")},
	}
	c := s.Clone()
	if !c.Equal(s) {
		t.Fatal("clone should equal the original")
	}
	c.Categories[0].Name = "Otra"
	if s.Categories[0].Name != "Comida" {
		t.Fatal("clone shares the categories slice")
	}
	if c.Equal(s) {
		t.Fatal("modified clone should differ")
	}
}

func TestSummaryEqualComparesNumerically(t *testing.T) {
	a := Summary{TotalIncome: decimal.RequireFromString("10")}
	b := Summary{TotalIncome: decimal.RequireFromString("10.00")}
	if !a.Equal(b) {
		t.Fatal("10 and 10.00 should be equal")
	}
}
