package api

import (
	"context"
	"net/http"

	"cashify/internal/core"
)

func (c *Client) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	var out []transactionResponse
	if err := c.do(ctx, "list_transactions", http.MethodGet, idPath("/transacciones/usuario/%s", userID), nil, nil, &out); err != nil {
		return nil, err
	}
	return transactionsIn(out, c.loc), nil
}

// ListTransactionsBetween lists the user's transactions inside p, bounds included.
func (c *Client) ListTransactionsBetween(ctx context.Context, userID string, p core.Period) ([]core.Transaction, error) {
	var out []transactionResponse
	if err := c.do(ctx, "list_transactions_period", http.MethodGet, idPath("/transacciones/usuario/%s/fecha", userID),
		c.periodQuery(p), nil, &out); err != nil {
		return nil, err
	}
	return transactionsIn(out, c.loc), nil
}

// Summary returns the all-time totals computed by the server.
func (c *Client) Summary(ctx context.Context, userID string) (core.Summary, error) {
	var out summaryResponse
	err := c.do(ctx, "summary", http.MethodGet, idPath("/transacciones/usuario/%s/resumen", userID), nil, nil, &out)
	return out.toCore(), err
}

func (c *Client) SummaryForPeriod(ctx context.Context, userID string, p core.Period) (core.Summary, error) {
	var out summaryResponse
	err := c.do(ctx, "summary_period", http.MethodGet, idPath("/transacciones/usuario/%s/resumen/periodo", userID),
		c.periodQuery(p), nil, &out)
	return out.toCore(), err
}

func (c *Client) CreateTransaction(ctx context.Context, userID string, d core.TransactionDraft) (core.Transaction, error) {
	var out transactionResponse
	err := c.do(ctx, "create_transaction", http.MethodPost, idPath("/transacciones/usuario/%s", userID), nil,
		newTransactionRequest(d, c.loc), &out)
	return out.toCore(c.loc), err
}

func (c *Client) UpdateTransaction(ctx context.Context, id string, d core.TransactionDraft) (core.Transaction, error) {
	var out transactionResponse
	err := c.do(ctx, "update_transaction", http.MethodPut, idPath("/transacciones/%s", id), nil,
		newTransactionRequest(d, c.loc), &out)
	return out.toCore(c.loc), err
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, "delete_transaction", http.MethodDelete, idPath("/transacciones/%s", id), nil, nil, nil)
}
