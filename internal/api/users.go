package api

import (
	"context"
	"net/http"

	"cashify/internal/core"
)

// Login checks credentials. A wrong pair answers 401.
func (c *Client) Login(ctx context.Context, in core.LoginInput) (core.User, error) {
	var out userResponse
	err := c.do(ctx, "login", http.MethodPost, "/usuarios/login", nil,
		loginRequest{Email: in.Email, Password: in.Password}, &out)
	return out.toCore(), err
}

func (c *Client) ListUsers(ctx context.Context) ([]core.User, error) {
	var out []userResponse
	if err := c.do(ctx, "list_users", http.MethodGet, "/usuarios", nil, nil, &out); err != nil {
		return nil, err
	}
	return mapSlice(out, userResponse.toCore), nil
}

func (c *Client) GetUser(ctx context.Context, id string) (core.User, error) {
	var out userResponse
	err := c.do(ctx, "get_user", http.MethodGet, idPath("/usuarios/%s", id), nil, nil, &out)
	return out.toCore(), err
}

// CreateUser registers an account. A taken handle or email answers 409.
func (c *Client) CreateUser(ctx context.Context, in core.AccountInput) (core.User, error) {
	var out userResponse
	err := c.do(ctx, "create_user", http.MethodPost, "/usuarios", nil, newUserRequest(in), &out)
	return out.toCore(), err
}

func (c *Client) UpdateUser(ctx context.Context, id string, in core.AccountInput) (core.User, error) {
	var out userResponse
	err := c.do(ctx, "update_user", http.MethodPut, idPath("/usuarios/%s", id), nil, newUserRequest(in), &out)
	return out.toCore(), err
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, "delete_user", http.MethodDelete, idPath("/usuarios/%s", id), nil, nil, nil)
}

func newUserRequest(in core.AccountInput) userRequest {
	return userRequest{Handle: in.Handle, Email: in.Email, Password: in.Password}
}
