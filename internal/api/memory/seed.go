package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"cashify/internal/core"
)

// Demo credentials created by Seed.
const (
	DemoEmail    = "demo@cashify.local"
	DemoPassword = "demo1234"
)

// Seed creates a demo account with a few categories and transactions dated
// around now, so a fresh memory backend has something to show.
func (s *Store) Seed(ctx context.Context, now time.Time) error {
	u, err := s.CreateUser(ctx, core.AccountInput{Handle: "demo", Email: DemoEmail, Password: DemoPassword})
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	ids := map[string]string{}
	for _, name := range []string{"Salario", "Comida", "Alquiler", "Transporte"} {
		c, err := s.CreateCategory(ctx, u.ID, name)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", name, err)
		}
		ids[name] = c.ID
	}

	rows := []struct {
		kind     core.Kind
		category string
		desc     string
		amount   string
		daysAgo  int
	}{
		{core.KindIncome, "Salario", "Sueldo mensual", "2500.00", 28},
		{core.KindExpense, "Alquiler", "Alquiler departamento", "850.00", 27},
		{core.KindExpense, "Comida", "Supermercado", "124.35", 12},
		{core.KindExpense, "Transporte", "Carga tarjeta", "30.00", 6},
		{core.KindExpense, "Comida", "Almuerzo", "18.90", 2},
		{core.KindIncome, "Salario", "Trabajo extra", "300.00", 1},
	}
	for _, r := range rows {
		_, err := s.CreateTransaction(ctx, u.ID, core.TransactionDraft{
			Kind:        r.kind,
			CategoryID:  ids[r.category],
			Amount:      decimal.RequireFromString(r.amount),
			Date:        now.AddDate(0, 0, -r.daysAgo).Truncate(time.Minute),
			Description: r.desc,
		})
		if err != nil {
			return fmt.Errorf("seed transaction %q: %w", r.desc, err)
		}
	}
	return nil
}
