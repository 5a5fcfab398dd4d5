package api

import (
	"context"
	"net/http"

	"cashify/internal/core"
)

func (c *Client) ListCategories(ctx context.Context, userID string) ([]core.Category, error) {
	var out []categoryResponse
	if err := c.do(ctx, "list_categories", http.MethodGet, idPath("/categorias/usuario/%s", userID), nil, nil, &out); err != nil {
		return nil, err
	}
	return mapSlice(out, categoryResponse.toCore), nil
}

func (c *Client) CreateCategory(ctx context.Context, userID string, name string) (core.Category, error) {
	var out categoryResponse
	err := c.do(ctx, "create_category", http.MethodPost, idPath("/categorias/usuario/%s", userID), nil,
		categoryRequest{Name: name}, &out)
	return out.toCore(), err
}

func (c *Client) UpdateCategory(ctx context.Context, id string, name string) (core.Category, error) {
	var out categoryResponse
	err := c.do(ctx, "update_category", http.MethodPut, idPath("/categorias/%s", id), nil,
		categoryRequest{Name: name}, &out)
	return out.toCore(), err
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, "delete_category", http.MethodDelete, idPath("/categorias/%s", id), nil, nil, nil)
}
