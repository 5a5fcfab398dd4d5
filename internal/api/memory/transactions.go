package memory

import (
	"context"
	"net/http"
	"slices"

	"cashify/internal/core"
)

func (s *Store) ListTransactions(_ context.Context, userID string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userIndex(userID) < 0 {
		return nil, fail("list_transactions", http.StatusNotFound, "Usuario no encontrado")
	}
	return s.between(userID, nil), nil
}

func (s *Store) ListTransactionsBetween(_ context.Context, userID string, p core.Period) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userIndex(userID) < 0 {
		return nil, fail("list_transactions_period", http.StatusNotFound, "Usuario no encontrado")
	}
	return s.between(userID, &p), nil
}

func (s *Store) between(userID string, p *core.Period) []core.Transaction {
	out := []core.Transaction{}
	for _, t := range s.txs {
		if t.UserID != userID {
			continue
		}
		if p != nil && (t.Date.Before(p.Start) || t.Date.After(p.End)) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *Store) Summary(_ context.Context, userID string) (core.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userIndex(userID) < 0 {
		return core.Summary{}, fail("summary", http.StatusNotFound, "Usuario no encontrado")
	}
	return core.Summarize(s.between(userID, nil)), nil
}

func (s *Store) SummaryForPeriod(_ context.Context, userID string, p core.Period) (core.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userIndex(userID) < 0 {
		return core.Summary{}, fail("summary_period", http.StatusNotFound, "Usuario no encontrado")
	}
	sum := core.Summarize(s.between(userID, &p))
	sum.Period = p.Label()
	return sum, nil
}

func (s *Store) resolveCategory(op string, userID, categoryID string) (core.Category, error) {
	c, ok := core.FindCategory(s.cats, categoryID)
	if !ok || c.UserID != userID {
		return core.Category{}, fail(op, http.StatusBadRequest, "invalid category")
	}
	return c, nil
}

func (s *Store) CreateTransaction(_ context.Context, userID string, d core.TransactionDraft) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userIndex(userID) < 0 {
		return core.Transaction{}, fail("create_transaction", http.StatusNotFound, "Usuario no encontrado")
	}
	c, err := s.resolveCategory("create_transaction", userID, d.CategoryID)
	if err != nil {
		return core.Transaction{}, err
	}
	t := core.Transaction{
		ID:           s.id(),
		Kind:         d.Kind,
		CategoryID:   c.ID,
		CategoryName: c.Name,
		Description:  d.Description,
		Date:         d.Date,
		Amount:       d.Amount,
		UserID:       userID,
	}
	s.txs = append(s.txs, t)
	return t, nil
}

func (s *Store) UpdateTransaction(_ context.Context, id string, d core.TransactionDraft) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.txs, func(t core.Transaction) bool { return t.ID == id })
	if i < 0 {
		return core.Transaction{}, fail("update_transaction", http.StatusNotFound, "Transacción no encontrada")
	}
	c, err := s.resolveCategory("update_transaction", s.txs[i].UserID, d.CategoryID)
	if err != nil {
		return core.Transaction{}, err
	}
	t := &s.txs[i]
	t.Kind = d.Kind
	t.CategoryID = c.ID
	t.CategoryName = c.Name
	t.Description = d.Description
	t.Date = d.Date
	t.Amount = d.Amount
	return *t, nil
}

func (s *Store) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.txs, func(t core.Transaction) bool { return t.ID == id })
	if i < 0 {
		return fail("delete_transaction", http.StatusNotFound, "Transacción no encontrada")
	}
	s.txs = slices.Delete(s.txs, i, i+1)
	return nil
}
