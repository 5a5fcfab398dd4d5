package memory

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"cashify/internal/core"
)

func (s *Store) ListCategories(_ context.Context, userID string) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userIndex(userID) < 0 {
		return nil, fail("list_categories", http.StatusNotFound, "Usuario no encontrado")
	}
	out := []core.Category{}
	for _, c := range s.cats {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) userCategories(userID string) []core.Category {
	var out []core.Category
	for _, c := range s.cats {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) CreateCategory(_ context.Context, userID string, name string) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userIndex(userID) < 0 {
		return core.Category{}, fail("create_category", http.StatusNotFound, "Usuario no encontrado")
	}
	name = strings.TrimSpace(name)
	if core.CategoryNameTaken(s.userCategories(userID), name, "") {
		return core.Category{}, fail("create_category", http.StatusConflict, "Ya existe una categoría con ese nombre")
	}
	c := core.Category{ID: s.id(), Name: name, UserID: userID}
	s.cats = append(s.cats, c)
	return c, nil
}

// UpdateCategory renames a category. Transactions pick the new name up.
func (s *Store) UpdateCategory(_ context.Context, id string, name string) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.cats, func(c core.Category) bool { return c.ID == id })
	if i < 0 {
		return core.Category{}, fail("update_category", http.StatusNotFound, "Categoría no encontrada")
	}
	name = strings.TrimSpace(name)
	if core.CategoryNameTaken(s.userCategories(s.cats[i].UserID), name, id) {
		return core.Category{}, fail("update_category", http.StatusConflict, "Ya existe una categoría con ese nombre")
	}
	s.cats[i].Name = name
	for j := range s.txs {
		if s.txs[j].CategoryID == id {
			s.txs[j].CategoryName = name
		}
	}
	return s.cats[i], nil
}

// DeleteCategory refuses to drop a category still used by a transaction.
func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.cats, func(c core.Category) bool { return c.ID == id })
	if i < 0 {
		return fail("delete_category", http.StatusNotFound, "Categoría no encontrada")
	}
	if slices.ContainsFunc(s.txs, func(t core.Transaction) bool { return t.CategoryID == id }) {
		return fail("delete_category", http.StatusConflict, "La categoría tiene transacciones asociadas")
	}
	s.cats = slices.Delete(s.cats, i, i+1)
	return nil
}
