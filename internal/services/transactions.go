package services

import (
	"context"
	"sync"
	"time"

	"cashify/internal/core"
	"cashify/internal/log"
)

// TransactionForm is the state of the transaction form.
type TransactionForm struct {
	EditingID string
	Input     core.TransactionInput
	Error     string
}

func (f TransactionForm) Editing() bool { return f.EditingID != "" }

// TransactionManager owns the transaction form and the list filter of one user.
type TransactionManager struct {
	gw     TransactionGateway
	userID string
	loc    *time.Location
	now    func() time.Time
	logger *log.Logger

	mu     sync.Mutex
	form   TransactionForm
	filter core.Kind
}

func NewTransactionManager(gw TransactionGateway, userID string, loc *time.Location, now func() time.Time, logger *log.Logger) *TransactionManager {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	m := &TransactionManager{
		gw:     gw,
		userID: userID,
		loc:    loc,
		now:    now,
		logger: logger.WithComponent(log.ComponentForms).With(log.FieldUserID, userID),
	}
	m.form = m.blank()
	return m
}

// blank is a fresh form: an expense dated now.
func (m *TransactionManager) blank() TransactionForm {
	return TransactionForm{Input: core.TransactionInput{
		Kind: string(core.KindExpense),
		Date: m.now().In(m.loc).Format(core.DateTimeInputLayout),
	}}
}

func (m *TransactionManager) Form() TransactionForm {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form
}

// Edit loads an existing transaction into the form.
func (m *TransactionManager) Edit(tx core.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form = TransactionForm{
		EditingID: tx.ID,
		Input: core.TransactionInput{
			Kind:        string(tx.Kind),
			CategoryID:  tx.CategoryID,
			Amount:      core.FormatAmountInput(tx.Amount),
			Date:        tx.Date.In(m.loc).Format(core.DateTimeInputLayout),
			Description: tx.Description,
		},
	}
}

func (m *TransactionManager) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form = m.blank()
}

// Filter is the kind the list is restricted to; empty means all.
func (m *TransactionManager) Filter() core.Kind {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filter
}

// SetFilter accepts a kind or "TODOS"/"" for no restriction.
func (m *TransactionManager) SetFilter(raw string) {
	kind, err := core.ParseKind(raw)
	if err != nil {
		kind = ""
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filter = kind
}

// Visible applies the list filter and sorts newest first.
func (m *TransactionManager) Visible(txs []core.Transaction) []core.Transaction {
	return core.SortByRecency(core.FilterByKind(txs, m.Filter()))
}

// Submit creates a transaction, or updates the one being edited. On failure
// every typed value is kept and the error is shown.
func (m *TransactionManager) Submit(ctx context.Context, in core.TransactionInput) error {
	m.mu.Lock()
	m.form.Input = in
	m.form.Error = ""
	editing := m.form.EditingID
	m.mu.Unlock()

	draft, err := in.Parse(m.loc)
	if err != nil {
		return m.fail(err, MsgTxSaveFailed)
	}

	op := log.OpCreate
	if editing != "" {
		op = log.OpUpdate
		_, err = m.gw.UpdateTransaction(ctx, editing, draft)
	} else {
		_, err = m.gw.CreateTransaction(ctx, m.userID, draft)
	}
	if err != nil {
		m.logger.WarnContext(ctx, "Transaction save failed", append(failure(op, m.userID, err), log.FieldTransactionID, editing)...)
		return m.fail(err, MsgTxSaveFailed)
	}

	m.logger.InfoContext(ctx, "Transaction saved",
		log.FieldOperation, op, log.FieldTransactionID, editing, log.FieldKind, draft.Kind)
	m.Cancel()
	return nil
}

// Delete removes a transaction once the user confirmed it.
func (m *TransactionManager) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := m.gw.DeleteTransaction(ctx, id); err != nil {
		m.logger.WarnContext(ctx, "Transaction delete failed", append(failure(log.OpDelete, m.userID, err), log.FieldTransactionID, id)...)
		return m.fail(err, MsgTxDeleteFailed)
	}
	m.logger.InfoContext(ctx, "Transaction deleted", log.FieldTransactionID, id)
	m.mu.Lock()
	if m.form.EditingID == id {
		m.form = m.blank()
	}
	m.form.Error = ""
	m.mu.Unlock()
	return nil
}

func (m *TransactionManager) fail(err error, fallback string) error {
	fe := formError(err, fallback)
	m.mu.Lock()
	m.form.Error = fe.Message
	m.mu.Unlock()
	return fe
}
