package core

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// LatestCount is how many transactions the summary shows as recent activity.
const LatestCount = 5

// CategoryStats is the per-category bucket of the breakdown.
type CategoryStats struct {
	Name    string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Count   int
}

// Total is income plus expense: the volume that moved through the category.
func (c CategoryStats) Total() decimal.Decimal {
	return c.Income.Add(c.Expense)
}

// CategoryBreakdown is the result of AggregateByCategory.
type CategoryBreakdown struct {
	ByName map[string]CategoryStats
	// Ranked holds the same buckets sorted by Total descending. Equal totals
	// keep the order in which the category was first seen.
	Ranked []CategoryStats
}

// AggregateByCategory buckets transactions by category name in one pass.
// Two categories that share a name end up in the same bucket. Anything that
// is not income counts as expense.
func AggregateByCategory(txs []Transaction) CategoryBreakdown {
	byName := make(map[string]CategoryStats)
	var order []string

	for _, tx := range txs {
		stats, seen := byName[tx.CategoryName]
		if !seen {
			stats = CategoryStats{Name: tx.CategoryName}
			order = append(order, tx.CategoryName)
		}
		if tx.Kind == KindIncome {
			stats.Income = stats.Income.Add(tx.Amount)
		} else {
			stats.Expense = stats.Expense.Add(tx.Amount)
		}
		stats.Count++
		byName[tx.CategoryName] = stats
	}

	ranked := make([]CategoryStats, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, byName[name])
	}
	slices.SortStableFunc(ranked, func(a, b CategoryStats) int {
		return b.Total().Cmp(a.Total())
	})

	return CategoryBreakdown{ByName: byName, Ranked: ranked}
}

// Summarize reduces a transaction list to global totals.
func Summarize(txs []Transaction) Summary {
	var s Summary
	for _, tx := range txs {
		if tx.Kind == KindIncome {
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
			s.IncomeCount++
		} else {
			s.TotalExpense = s.TotalExpense.Add(tx.Amount)
			s.ExpenseCount++
		}
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

// SortByRecency returns a copy of txs, newest first. Equal timestamps keep
// their input order.
func SortByRecency(txs []Transaction) []Transaction {
	out := slices.Clone(txs)
	slices.SortStableFunc(out, func(a, b Transaction) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// Latest returns the n most recent transactions.
func Latest(txs []Transaction, n int) []Transaction {
	sorted := SortByRecency(txs)
	if n < 0 {
		n = 0
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// FilterByKind keeps transactions of the given kind. An empty kind keeps all.
func FilterByKind(txs []Transaction, kind Kind) []Transaction {
	if kind == "" {
		return slices.Clone(txs)
	}
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Kind == kind {
			out = append(out, tx)
		}
	}
	return out
}

// Share returns which percentage of a category's volume is income and which is
// expense, rounded to whole numbers. Both are zero for an empty bucket.
func Share(c CategoryStats) (incomePct, expensePct int64) {
	total := c.Total()
	if total.IsZero() {
		return 0, 0
	}
	hundred := decimal.NewFromInt(100)
	incomePct = c.Income.Mul(hundred).Div(total).Round(0).IntPart()
	return incomePct, 100 - incomePct
}

// FindCategory looks a category up by id.
func FindCategory(categories []Category, id string) (Category, bool) {
	i := slices.IndexFunc(categories, func(c Category) bool { return c.ID == id })
	if i < 0 {
		return Category{}, false
	}
	return categories[i], true
}

// CategoryNameTaken reports whether another category already uses name,
// ignoring case and surrounding space. exceptID skips the category being edited.
func CategoryNameTaken(categories []Category, name string, exceptID string) bool {
	name = strings.TrimSpace(name)
	for _, c := range categories {
		if c.ID != exceptID && strings.EqualFold(strings.TrimSpace(c.Name), name) {
			return true
		}
	}
	return false
}
