package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashify/internal/api"
	"cashify/internal/core"
	"cashify/internal/log"
)

func TestCategorySubmit_ShortNameRejectedBeforeCall(t *testing.T) {
	gw := &fakeGateway{}
	m := NewCategoryManager(gw, "7", log.Discard())

	err := m.Submit(context.Background(), core.CategoryInput{Name: "F"})

	require.Error(t, err)
	assert.True(t, core.IsValidation(err))
	assert.Empty(t, gw.Calls())
	form := m.Form()
	assert.Equal(t, "F", form.Name)
	assert.Equal(t, "El nombre debe tener al menos 2 caracteres", form.Error)
}

func TestCategorySubmit_CreateThenEdit(t *testing.T) {
	var updated string
	gw := &fakeGateway{
		updateCategory: func(id string, name string) (core.Category, error) {
			updated = id
			return core.Category{ID: id, Name: name}, nil
		},
	}
	m := NewCategoryManager(gw, "7", log.Discard())

	require.NoError(t, m.Submit(context.Background(), core.CategoryInput{Name: " Food "}))
	assert.Equal(t, CategoryForm{}, m.Form(), "form resets after success")

	m.Edit(core.Category{ID: "4", Name: "Food"})
	assert.True(t, m.Form().Editing())
	require.NoError(t, m.Submit(context.Background(), core.CategoryInput{Name: "Groceries"}))

	assert.Equal(t, "4", updated)
	assert.Equal(t, []string{"create_category", "update_category"}, gw.Calls())
	assert.False(t, m.Form().Editing())
}

func TestCategorySubmit_ServerErrorKeepsInput(t *testing.T) {
	gw := &fakeGateway{
		createCategory: func(string) (core.Category, error) {
			return core.Category{}, &api.Error{Op: "create_category", Status: http.StatusConflict}
		},
	}
	m := NewCategoryManager(gw, "7", log.Discard())

	err := m.Submit(context.Background(), core.CategoryInput{Name: "Food"})

	require.Error(t, err)
	form := m.Form()
	assert.Equal(t, "Food", form.Name)
	assert.Equal(t, MsgCategorySaveFailed, form.Error)
}

func TestCategoryDelete_NeedsConfirmation(t *testing.T) {
	gw := &fakeGateway{}
	m := NewCategoryManager(gw, "7", log.Discard())

	err := m.Delete(context.Background(), "3", false)

	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Empty(t, gw.Calls())

	require.NoError(t, m.Delete(context.Background(), "3", true))
	assert.Equal(t, []string{"delete_category"}, gw.Calls())
}

func TestCategoryDelete_ServerMessage(t *testing.T) {
	gw := &fakeGateway{
		deleteCategory: func(string) error {
			return &api.Error{Op: "delete_category", Status: http.StatusConflict, Message: "La categoría tiene transacciones asociadas"}
		},
	}
	m := NewCategoryManager(gw, "7", log.Discard())

	err := m.Delete(context.Background(), "3", true)

	assert.Equal(t, "La categoría tiene transacciones asociadas", UserMessage(err, MsgCategoryDelFailed))
	assert.Equal(t, "La categoría tiene transacciones asociadas", m.Form().Error)
}

var fixedNow = time.Date(2024, 4, 2, 18, 45, 12, 0, time.UTC)

func newTxManager(gw *fakeGateway) *TransactionManager {
	return NewTransactionManager(gw, "7", time.UTC, func() time.Time { return fixedNow }, log.Discard())
}

func TestTransactionForm_Defaults(t *testing.T) {
	m := newTxManager(&fakeGateway{})

	form := m.Form()
	assert.Equal(t, string(core.KindExpense), form.Input.Kind)
	assert.Equal(t, "2024-04-02T18:45", form.Input.Date)
	assert.False(t, form.Editing())
}

func TestTransactionSubmit_ServerErrorKeepsValues(t *testing.T) {
	gw := &fakeGateway{
		createTx: func(core.TransactionDraft) (core.Transaction, error) {
			return core.Transaction{}, &api.Error{Op: "create_transaction", Status: http.StatusBadRequest, Message: "invalid category"}
		},
	}
	m := newTxManager(gw)
	in := core.TransactionInput{
		Kind:        "INGRESO",
		CategoryID:  "99",
		Amount:      "42.10",
		Date:        "2024-04-01T10:00",
		Description: "freelance",
	}

	err := m.Submit(context.Background(), in)

	require.Error(t, err)
	form := m.Form()
	assert.Equal(t, in, form.Input)
	assert.Equal(t, "invalid category", form.Error)
	assert.Equal(t, []string{"create_transaction"}, gw.Calls())
}

func TestTransactionSubmit_InvalidAmountNoCall(t *testing.T) {
	gw := &fakeGateway{}
	m := newTxManager(gw)

	err := m.Submit(context.Background(), core.TransactionInput{
		Kind: "GASTO", CategoryID: "1", Amount: "0", Date: "2024-04-01T10:00", Description: "x",
	})

	assert.True(t, core.IsValidation(err))
	assert.Empty(t, gw.Calls())
	assert.Equal(t, "0", m.Form().Input.Amount)
}

func TestTransactionSubmit_EditSendsDraft(t *testing.T) {
	var got core.TransactionDraft
	gw := &fakeGateway{
		updateTx: func(id string, d core.TransactionDraft) (core.Transaction, error) {
			got = d
			return core.Transaction{ID: id}, nil
		},
	}
	m := newTxManager(gw)
	m.Edit(core.Transaction{
		ID: "9", Kind: core.KindIncome, CategoryID: "2", Amount: money("7.5"),
		Date: time.Date(2024, 3, 3, 8, 5, 0, 0, time.UTC), Description: "tip",
	})
	form := m.Form()
	assert.Equal(t, "7.50", form.Input.Amount)
	assert.Equal(t, "2024-03-03T08:05", form.Input.Date)
	assert.Equal(t, "2", form.Input.CategoryID)

	in := form.Input
	in.Amount = "8"
	require.NoError(t, m.Submit(context.Background(), in))

	assert.True(t, got.Amount.Equal(money("8")))
	assert.Equal(t, core.KindIncome, got.Kind)
	assert.Equal(t, []string{"update_transaction"}, gw.Calls())
	assert.False(t, m.Form().Editing())
}

func TestTransactionDelete(t *testing.T) {
	gw := &fakeGateway{
		deleteTx: func(string) error { return errors.Join(api.ErrUnreachable, errors.New("timeout")) },
	}
	m := newTxManager(gw)

	assert.ErrorIs(t, m.Delete(context.Background(), "5", false), ErrConfirmationRequired)
	assert.Empty(t, gw.Calls())

	err := m.Delete(context.Background(), "5", true)
	require.Error(t, err)
	assert.Equal(t, MsgUnreachable, m.Form().Error)
}

func TestTransactionFilterAndOrder(t *testing.T) {
	m := newTxManager(&fakeGateway{})
	txs := sampleTxs()

	all := m.Visible(txs)
	require.Len(t, all, 3)
	assert.Equal(t, "3", all[0].ID, "newest first")

	m.SetFilter("INGRESO")
	assert.Equal(t, core.KindIncome, m.Filter())
	income := m.Visible(txs)
	require.Len(t, income, 1)
	assert.Equal(t, "2", income[0].ID)

	m.SetFilter("TODOS")
	assert.Equal(t, core.Kind(""), m.Filter())
	assert.Len(t, m.Visible(txs), 3)
}
