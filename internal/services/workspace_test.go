package services

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashify/internal/core"
)

func TestWorkspaceReloadFeedsFilter(t *testing.T) {
	txs := sampleTxs()
	gw := &fakeGateway{
		listTxs: func(context.Context) ([]core.Transaction, error) { return txs, nil },
		summary: func(context.Context) (core.Summary, error) { return core.Summarize(txs), nil },
	}
	w := NewWorkspace(gw, core.User{ID: "7", Handle: "ana"}, WorkspaceOptions{})

	require.NoError(t, w.Reload(context.Background()))

	view := w.Filter.View()
	assert.False(t, view.Filtered)
	assert.Len(t, view.Transactions, 3)
	assert.True(t, view.Summary.Balance.Equal(money("-105")))
}

func TestWorkspaceTabsAndUser(t *testing.T) {
	w := NewWorkspace(&fakeGateway{}, core.User{ID: "7", Handle: "ana"}, WorkspaceOptions{})

	assert.Equal(t, TabSummary, w.Tab())
	w.SetTab(ParseTab("categorias"))
	assert.Equal(t, TabCategories, w.Tab())
	assert.Equal(t, TabSummary, ParseTab("nope"))

	w.SetUser(core.User{ID: "7", Handle: "ana2"})
	assert.Equal(t, "ana2", w.User().Handle)
	w.SetUser(core.User{ID: "8", Handle: "intruder"})
	assert.Equal(t, "ana2", w.User().Handle, "a workspace never switches user")
}

// ledger is a gateway backed by a mutable transaction list, filtered by
// period the way the server does it.
func ledger(txs *[]core.Transaction, mu *sync.Mutex) *fakeGateway {
	snapshot := func() []core.Transaction {
		mu.Lock()
		defer mu.Unlock()
		return slices.Clone(*txs)
	}
	between := func(p core.Period) []core.Transaction {
		return slices.DeleteFunc(snapshot(), func(tx core.Transaction) bool {
			return tx.Date.Before(p.Start) || tx.Date.After(p.End)
		})
	}
	return &fakeGateway{
		listTxs: func(context.Context) ([]core.Transaction, error) { return snapshot(), nil },
		summary: func(context.Context) (core.Summary, error) { return core.Summarize(snapshot()), nil },
		summaryPeriod: func(_ context.Context, p core.Period) (core.Summary, error) {
			return core.Summarize(between(p)), nil
		},
		listBetween: func(_ context.Context, p core.Period) ([]core.Transaction, error) {
			return between(p), nil
		},
		deleteTx: func(id string) error {
			mu.Lock()
			defer mu.Unlock()
			*txs = slices.DeleteFunc(*txs, func(tx core.Transaction) bool { return tx.ID == id })
			return nil
		},
	}
}

func TestWorkspaceReloadRefreshesAppliedPeriod(t *testing.T) {
	var mu sync.Mutex
	txs := sampleTxs()
	gw := ledger(&txs, &mu)
	w := NewWorkspace(gw, core.User{ID: "7", Handle: "ana"}, WorkspaceOptions{Location: time.UTC})
	ctx := context.Background()
	require.NoError(t, w.Reload(ctx))
	require.NoError(t, w.Filter.Apply(ctx, core.PeriodInput{Start: "2024-01-10", End: "2024-01-10"}))
	require.Len(t, w.Filter.View().Transactions, 3)

	require.NoError(t, w.Transactions.Delete(ctx, "3", true))
	require.NoError(t, w.Reload(ctx))

	view := w.Filter.View()
	assert.True(t, view.Filtered, "the period stays applied")
	assert.Equal(t, "2024-01-10", view.Input.Start)
	assert.Len(t, view.Transactions, 2)
	assert.True(t, view.Summary.TotalExpense.Equal(money("10")), "deleted expense no longer counted")
}

func TestWorkspaceReloadLeavesUnfilteredAlone(t *testing.T) {
	var mu sync.Mutex
	txs := sampleTxs()
	gw := ledger(&txs, &mu)
	w := NewWorkspace(gw, core.User{ID: "7", Handle: "ana"}, WorkspaceOptions{})

	require.NoError(t, w.Reload(context.Background()))

	assert.NotContains(t, gw.Calls(), "summary_period")
	assert.NotContains(t, gw.Calls(), "list_transactions_period")
}
