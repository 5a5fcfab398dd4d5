package memory

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashify/internal/api"
	"cashify/internal/core"
)

func TestLoginAndDuplicates(t *testing.T) {
	ctx := context.Background()
	s := New()

	u, err := s.CreateUser(ctx, core.AccountInput{Handle: "ana", Email: "ana@example.com", Password: "12345678"})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, core.AccountInput{Handle: "ANA", Email: "other@example.com", Password: "12345678"})
	assert.Equal(t, http.StatusConflict, api.StatusOf(err))

	got, err := s.Login(ctx, core.LoginInput{Email: "ana@example.com", Password: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Login(ctx, core.LoginInput{Email: "ana@example.com", Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, api.StatusOf(err))
}

func TestTransactionsRequireOwnCategory(t *testing.T) {
	ctx := context.Background()
	s := New()
	a, _ := s.CreateUser(ctx, core.AccountInput{Handle: "ana", Email: "ana@example.com", Password: "x"})
	b, _ := s.CreateUser(ctx, core.AccountInput{Handle: "bob", Email: "bob@example.com", Password: "x"})
	cat, err := s.CreateCategory(ctx, b.ID, "Food")
	require.NoError(t, err)

	_, err = s.CreateTransaction(ctx, a.ID, core.TransactionDraft{Kind: core.KindExpense, CategoryID: cat.ID, Amount: decimal.NewFromInt(1)})

	assert.Equal(t, http.StatusBadRequest, api.StatusOf(err))
	assert.Equal(t, "invalid category", api.MessageOf(err))
}

func TestSummaryAndPeriod(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)
	require.NoError(t, s.Seed(ctx, now))

	u, err := s.Login(ctx, core.LoginInput{Email: DemoEmail, Password: DemoPassword})
	require.NoError(t, err)
	assert.Equal(t, 4, u.CategoryCount)
	assert.Equal(t, 6, u.TransactionCount)

	all, err := s.Summary(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, all.TotalIncome.Equal(decimal.RequireFromString("2800")))
	assert.True(t, all.TotalExpense.Equal(decimal.RequireFromString("1023.25")))

	p := core.DayBounds(now.AddDate(0, 0, -7), now)
	txs, err := s.ListTransactionsBetween(ctx, u.ID, p)
	require.NoError(t, err)
	assert.Len(t, txs, 3)

	period, err := s.SummaryForPeriod(ctx, u.ID, p)
	require.NoError(t, err)
	assert.Equal(t, 1, period.IncomeCount)
	assert.Equal(t, 2, period.ExpenseCount)
	assert.NotEmpty(t, period.Period)
}

func TestCategoryRenameAndDelete(t *testing.T) {
	ctx := context.Background()
	s := New()
	u, _ := s.CreateUser(ctx, core.AccountInput{Handle: "ana", Email: "ana@example.com", Password: "x"})
	food, _ := s.CreateCategory(ctx, u.ID, "Food")
	rent, _ := s.CreateCategory(ctx, u.ID, "Rent")
	_, err := s.CreateTransaction(ctx, u.ID, core.TransactionDraft{Kind: core.KindExpense, CategoryID: food.ID, Amount: decimal.NewFromInt(3)})
	require.NoError(t, err)

	_, err = s.UpdateCategory(ctx, rent.ID, "food")
	assert.Equal(t, http.StatusConflict, api.StatusOf(err))

	_, err = s.UpdateCategory(ctx, food.ID, "Groceries")
	require.NoError(t, err)
	txs, _ := s.ListTransactions(ctx, u.ID)
	assert.Equal(t, "Groceries", txs[0].CategoryName)

	assert.Equal(t, http.StatusConflict, api.StatusOf(s.DeleteCategory(ctx, food.ID)))
	assert.NoError(t, s.DeleteCategory(ctx, rent.ID))
	assert.True(t, api.IsNotFound(s.DeleteCategory(ctx, rent.ID)))
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Seed(ctx, time.Now()))
	users, _ := s.ListUsers(ctx)
	require.Len(t, users, 1)

	require.NoError(t, s.DeleteUser(ctx, users[0].ID))

	assert.Empty(t, s.cats)
	assert.Empty(t, s.txs)
	_, err := s.ListCategories(ctx, users[0].ID)
	assert.True(t, api.IsNotFound(err))
}
