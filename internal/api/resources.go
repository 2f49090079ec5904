package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/darkcod/eatadmin/internal/errs"
	"github.com/darkcod/eatadmin/internal/model"
)

// Resource calls are thin compositions of AuthorizedCall and decodeJSON with
// a resource-specific path, method and fallback message.

// Dashboard fetches the headline metrics.
func (c *Client) Dashboard(ctx context.Context, onUnauthorized UnauthorizedFunc) (model.Dashboard, error) {
	return call[model.Dashboard](ctx, c, http.MethodGet, "/dashboard", nil, "failed to load dashboard", onUnauthorized)
}

// Orders lists all orders.
func (c *Client) Orders(ctx context.Context, onUnauthorized UnauthorizedFunc) ([]model.Order, error) {
	return call[[]model.Order](ctx, c, http.MethodGet, "/orders", nil, "failed to load orders", onUnauthorized)
}

// Order fetches one order by id.
func (c *Client) Order(ctx context.Context, id int64, onUnauthorized UnauthorizedFunc) (model.Order, error) {
	return call[model.Order](ctx, c, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, "failed to load order", onUnauthorized)
}

// UpdateOrderStatus moves an order to the given status. The backend is the
// authority on which transitions are allowed.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus, onUnauthorized UnauthorizedFunc) (model.Order, error) {
	body := model.StatusPatch{Status: status}
	return call[model.Order](ctx, c, http.MethodPatch, fmt.Sprintf("/orders/%d", id), body, "failed to update order status", onUnauthorized)
}

// Products lists all products.
func (c *Client) Products(ctx context.Context, onUnauthorized UnauthorizedFunc) ([]model.Product, error) {
	return call[[]model.Product](ctx, c, http.MethodGet, "/products", nil, "failed to load products", onUnauthorized)
}

// CreateProduct creates a product and returns it with its assigned id.
func (c *Client) CreateProduct(ctx context.Context, in model.ProductInput, onUnauthorized UnauthorizedFunc) (model.Product, error) {
	return call[model.Product](ctx, c, http.MethodPost, "/products", in, "failed to create product", onUnauthorized)
}

// UpdateProduct applies a partial update to a product.
func (c *Client) UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch, onUnauthorized UnauthorizedFunc) (model.Product, error) {
	return call[model.Product](ctx, c, http.MethodPatch, fmt.Sprintf("/products/%d", id), patch, "failed to update product", onUnauthorized)
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int64, onUnauthorized UnauthorizedFunc) error {
	return c.delete(ctx, fmt.Sprintf("/products/%d", id), "failed to delete product", onUnauthorized)
}

// Categories lists all categories.
func (c *Client) Categories(ctx context.Context, onUnauthorized UnauthorizedFunc) ([]model.Category, error) {
	return call[[]model.Category](ctx, c, http.MethodGet, "/categories", nil, "failed to load categories", onUnauthorized)
}

// CreateCategory creates a category and returns it with its assigned id.
func (c *Client) CreateCategory(ctx context.Context, in model.CategoryInput, onUnauthorized UnauthorizedFunc) (model.Category, error) {
	return call[model.Category](ctx, c, http.MethodPost, "/categories", in, "failed to create category", onUnauthorized)
}

// UpdateCategory applies a partial update to a category.
func (c *Client) UpdateCategory(ctx context.Context, id int64, patch model.CategoryPatch, onUnauthorized UnauthorizedFunc) (model.Category, error) {
	return call[model.Category](ctx, c, http.MethodPatch, fmt.Sprintf("/categories/%d", id), patch, "failed to update category", onUnauthorized)
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id int64, onUnauthorized UnauthorizedFunc) error {
	return c.delete(ctx, fmt.Sprintf("/categories/%d", id), "failed to delete category", onUnauthorized)
}

// call is the shared authorized-call-then-decode composition.
func call[T any](ctx context.Context, c *Client, method, path string, body any, fallback string, onUnauthorized UnauthorizedFunc) (T, error) {
	var zero T
	resp, err := c.AuthorizedCall(ctx, path, RequestOptions{Method: method, Body: body}, onUnauthorized)
	if err != nil {
		return zero, err
	}
	return decodeJSON[T](resp, fallback)
}

// delete issues an authorized DELETE and only checks for a 2xx status.
func (c *Client) delete(ctx context.Context, path, fallback string, onUnauthorized UnauthorizedFunc) error {
	resp, err := c.AuthorizedCall(ctx, path, RequestOptions{Method: http.MethodDelete}, onUnauthorized)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errs.New(resp.StatusCode, fallback)
	}
	return nil
}
