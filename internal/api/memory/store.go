// Package memory is an in-process stand-in for the REST API. It answers
// with the same errors the server does, so the UI can be run and tested
// without the Spring service.
package memory

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"

	"cashify/internal/api"
	"cashify/internal/core"
)

type user struct {
	core.User
	password string
}

type Store struct {
	mu     sync.Mutex
	nextID int64
	users  []user
	cats   []core.Category
	txs    []core.Transaction
}

func New() *Store {
	return &Store{}
}

func (s *Store) id() string {
	s.nextID++
	return strconv.FormatInt(s.nextID, 10)
}

func fail(op string, status int, msg string) error {
	return &api.Error{Op: op, Status: status, Message: msg}
}

func (s *Store) countsFor(u core.User) core.User {
	u.CategoryCount = 0
	u.TransactionCount = 0
	for _, c := range s.cats {
		if c.UserID == u.ID {
			u.CategoryCount++
		}
	}
	for _, t := range s.txs {
		if t.UserID == u.ID {
			u.TransactionCount++
		}
	}
	return u
}

func (s *Store) userIndex(id string) int {
	return slices.IndexFunc(s.users, func(u user) bool { return u.ID == id })
}

func (s *Store) Login(_ context.Context, in core.LoginInput) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(in.Email)) && u.password == in.Password {
			return s.countsFor(u.User), nil
		}
	}
	return core.User{}, fail("login", http.StatusUnauthorized, "Credenciales inválidas")
}

func (s *Store) ListUsers(_ context.Context) ([]core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, s.countsFor(u.User))
	}
	return out, nil
}

func (s *Store) GetUser(_ context.Context, id string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIndex(id)
	if i < 0 {
		return core.User{}, fail("get_user", http.StatusNotFound, "Usuario no encontrado")
	}
	return s.countsFor(s.users[i].User), nil
}

func (s *Store) taken(in core.AccountInput, exceptID string) bool {
	for _, u := range s.users {
		if u.ID == exceptID {
			continue
		}
		if strings.EqualFold(u.Handle, strings.TrimSpace(in.Handle)) || strings.EqualFold(u.Email, strings.TrimSpace(in.Email)) {
			return true
		}
	}
	return false
}

func (s *Store) CreateUser(_ context.Context, in core.AccountInput) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.taken(in, "") {
		return core.User{}, fail("create_user", http.StatusConflict, "")
	}
	u := user{
		User:     core.User{ID: s.id(), Handle: strings.TrimSpace(in.Handle), Email: strings.TrimSpace(in.Email)},
		password: in.Password,
	}
	s.users = append(s.users, u)
	return u.User, nil
}

func (s *Store) UpdateUser(_ context.Context, id string, in core.AccountInput) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIndex(id)
	if i < 0 {
		return core.User{}, fail("update_user", http.StatusNotFound, "Usuario no encontrado")
	}
	if s.taken(in, id) {
		return core.User{}, fail("update_user", http.StatusConflict, "El apodo o correo ya está en uso")
	}
	s.users[i].Handle = strings.TrimSpace(in.Handle)
	s.users[i].Email = strings.TrimSpace(in.Email)
	s.users[i].password = in.Password
	return s.countsFor(s.users[i].User), nil
}

// DeleteUser removes the user with everything they own.
func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIndex(id)
	if i < 0 {
		return fail("delete_user", http.StatusNotFound, "Usuario no encontrado")
	}
	s.users = slices.Delete(s.users, i, i+1)
	s.cats = slices.DeleteFunc(s.cats, func(c core.Category) bool { return c.UserID == id })
	s.txs = slices.DeleteFunc(s.txs, func(t core.Transaction) bool { return t.UserID == id })
	return nil
}
