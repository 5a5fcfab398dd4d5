package services

import (
	"context"
	"sync"

	"cashify/internal/core"
)

// fakeGateway records calls and delegates to optional hooks. Unset hooks
// answer with zero values.
type fakeGateway struct {
	mu    sync.Mutex
	calls []string

	login          func(core.LoginInput) (core.User, error)
	createUser     func(core.AccountInput) (core.User, error)
	updateUser     func(string, core.AccountInput) (core.User, error)
	deleteUser     func(string) error
	listCategories func(context.Context) ([]core.Category, error)
	createCategory func(string) (core.Category, error)
	updateCategory func(string, string) (core.Category, error)
	deleteCategory func(string) error
	listTxs        func(context.Context) ([]core.Transaction, error)
	createTx       func(core.TransactionDraft) (core.Transaction, error)
	updateTx       func(string, core.TransactionDraft) (core.Transaction, error)
	deleteTx       func(string) error
	summary        func(context.Context) (core.Summary, error)
	summaryPeriod  func(context.Context, core.Period) (core.Summary, error)
	listBetween    func(context.Context, core.Period) ([]core.Transaction, error)
}

var _ Gateway = (*fakeGateway)(nil)

func (f *fakeGateway) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
}

func (f *fakeGateway) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeGateway) Login(_ context.Context, in core.LoginInput) (core.User, error) {
	f.record("login")
	if f.login != nil {
		return f.login(in)
	}
	return core.User{}, nil
}

func (f *fakeGateway) ListUsers(context.Context) ([]core.User, error) {
	f.record("list_users")
	return nil, nil
}

func (f *fakeGateway) GetUser(_ context.Context, id string) (core.User, error) {
	f.record("get_user")
	return core.User{ID: id}, nil
}

func (f *fakeGateway) CreateUser(_ context.Context, in core.AccountInput) (core.User, error) {
	f.record("create_user")
	if f.createUser != nil {
		return f.createUser(in)
	}
	return core.User{ID: "1", Handle: in.Handle, Email: in.Email}, nil
}

func (f *fakeGateway) UpdateUser(_ context.Context, id string, in core.AccountInput) (core.User, error) {
	f.record("update_user")
	if f.updateUser != nil {
		return f.updateUser(id, in)
	}
	return core.User{ID: id, Handle: in.Handle, Email: in.Email}, nil
}

func (f *fakeGateway) DeleteUser(_ context.Context, id string) error {
	f.record("delete_user")
	if f.deleteUser != nil {
		return f.deleteUser(id)
	}
	return nil
}

func (f *fakeGateway) ListCategories(ctx context.Context, _ string) ([]core.Category, error) {
	f.record("list_categories")
	if f.listCategories != nil {
		return f.listCategories(ctx)
	}
	return nil, nil
}

func (f *fakeGateway) CreateCategory(_ context.Context, _ string, name string) (core.Category, error) {
	f.record("create_category")
	if f.createCategory != nil {
		return f.createCategory(name)
	}
	return core.Category{ID: "1", Name: name}, nil
}

func (f *fakeGateway) UpdateCategory(_ context.Context, id string, name string) (core.Category, error) {
	f.record("update_category")
	if f.updateCategory != nil {
		return f.updateCategory(id, name)
	}
	return core.Category{ID: id, Name: name}, nil
}

func (f *fakeGateway) DeleteCategory(_ context.Context, id string) error {
	f.record("delete_category")
	if f.deleteCategory != nil {
		return f.deleteCategory(id)
	}
	return nil
}

func (f *fakeGateway) ListTransactions(ctx context.Context, _ string) ([]core.Transaction, error) {
	f.record("list_transactions")
	if f.listTxs != nil {
		return f.listTxs(ctx)
	}
	return nil, nil
}

func (f *fakeGateway) CreateTransaction(_ context.Context, _ string, d core.TransactionDraft) (core.Transaction, error) {
	f.record("create_transaction")
	if f.createTx != nil {
		return f.createTx(d)
	}
	return core.Transaction{ID: "1"}, nil
}

func (f *fakeGateway) UpdateTransaction(_ context.Context, id string, d core.TransactionDraft) (core.Transaction, error) {
	f.record("update_transaction")
	if f.updateTx != nil {
		return f.updateTx(id, d)
	}
	return core.Transaction{ID: id}, nil
}

func (f *fakeGateway) DeleteTransaction(_ context.Context, id string) error {
	f.record("delete_transaction")
	if f.deleteTx != nil {
		return f.deleteTx(id)
	}
	return nil
}

func (f *fakeGateway) Summary(ctx context.Context, _ string) (core.Summary, error) {
	f.record("summary")
	if f.summary != nil {
		return f.summary(ctx)
	}
	return core.Summary{}, nil
}

func (f *fakeGateway) SummaryForPeriod(ctx context.Context, _ string, p core.Period) (core.Summary, error) {
	f.record("summary_period")
	if f.summaryPeriod != nil {
		return f.summaryPeriod(ctx, p)
	}
	return core.Summary{}, nil
}

func (f *fakeGateway) ListTransactionsBetween(ctx context.Context, _ string, p core.Period) ([]core.Transaction, error) {
	f.record("list_transactions_period")
	if f.listBetween != nil {
		return f.listBetween(ctx, p)
	}
	return nil, nil
}
