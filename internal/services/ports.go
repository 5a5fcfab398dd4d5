package services

import (
	"context"

	"cashify/internal/core"
)

// UserGateway is the user half of the REST API.
type UserGateway interface {
	Login(ctx context.Context, in core.LoginInput) (core.User, error)
	ListUsers(ctx context.Context) ([]core.User, error)
	GetUser(ctx context.Context, id string) (core.User, error)
	CreateUser(ctx context.Context, in core.AccountInput) (core.User, error)
	UpdateUser(ctx context.Context, id string, in core.AccountInput) (core.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type CategoryGateway interface {
	ListCategories(ctx context.Context, userID string) ([]core.Category, error)
	CreateCategory(ctx context.Context, userID string, name string) (core.Category, error)
	UpdateCategory(ctx context.Context, id string, name string) (core.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type TransactionGateway interface {
	ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	CreateTransaction(ctx context.Context, userID string, d core.TransactionDraft) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, d core.TransactionDraft) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// SummaryGateway serves the server-computed totals and period listings.
type SummaryGateway interface {
	Summary(ctx context.Context, userID string) (core.Summary, error)
	SummaryForPeriod(ctx context.Context, userID string, p core.Period) (core.Summary, error)
	ListTransactionsBetween(ctx context.Context, userID string, p core.Period) ([]core.Transaction, error)
}

// Gateway is the whole REST API. Both the HTTP client and the in-memory
// store implement it.
type Gateway interface {
	UserGateway
	CategoryGateway
	TransactionGateway
	SummaryGateway
}
