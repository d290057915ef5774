// Package source talks to the upstream admin REST API: the entity source
// for book and user catalogs and the sink for created orders.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bookhive/order_picker_service/common/constants"
	"github.com/bookhive/order_picker_service/internal/catalog"
)

// ErrUnauthorized means the upstream rejected the session's bearer token.
// The dashboard sends the user back through login.
var ErrUnauthorized = errors.New("upstream rejected credentials")

// OrderPayload is the order-creation body. BookIDs keeps the user's
// selection order.
type OrderPayload struct {
	UserID    string   `json:"userId"`
	BookIDs   []string `json:"bookIds"`
	Status    string   `json:"status"`
	Notes     string   `json:"notes,omitempty"`
	OrderDate string   `json:"orderDate"`
}

type upstreamError struct {
	Message string `json:"message"`
}

type Client struct {
	http *resty.Client
}

func NewClient(baseURL, token string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")
	if token != "" {
		c.SetAuthToken(token)
	}
	return &Client{http: c}
}

// FetchBooks returns the normalized book catalog in upstream order.
// Records without a usable id and inactive books are dropped.
func (c *Client) FetchBooks(ctx context.Context) ([]catalog.Entity, error) {
	raw, err := c.fetch(ctx, constants.AdminBooksPath, "books")
	if err != nil {
		return nil, err
	}
	entities := make([]catalog.Entity, 0, len(raw))
	for _, rec := range raw {
		if e, ok := catalog.NormalizeBook(rec); ok {
			entities = append(entities, e)
		}
	}
	return entities, nil
}

// FetchUsers returns the normalized user catalog in upstream order.
func (c *Client) FetchUsers(ctx context.Context) ([]catalog.Entity, error) {
	raw, err := c.fetch(ctx, constants.AdminUsersPath, "users")
	if err != nil {
		return nil, err
	}
	entities := make([]catalog.Entity, 0, len(raw))
	for _, rec := range raw {
		if e, ok := catalog.NormalizeUser(rec); ok {
			entities = append(entities, e)
		}
	}
	return entities, nil
}

func (c *Client) fetch(ctx context.Context, path, what string) ([]map[string]any, error) {
	var raw []map[string]any
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&raw).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", what, err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("fetch %s: upstream returned %d", what, resp.StatusCode())
	}
	return raw, nil
}

// CreateOrder submits an order. Upstream validation messages are passed
// through so the dashboard can show them verbatim.
func (c *Client) CreateOrder(ctx context.Context, payload OrderPayload) error {
	var apiErr upstreamError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetError(&apiErr).
		Post(constants.AdminOrdersPath)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if !resp.IsSuccess() {
		if apiErr.Message != "" {
			return fmt.Errorf("create order: %s", apiErr.Message)
		}
		return fmt.Errorf("create order: upstream returned %d", resp.StatusCode())
	}
	return nil
}
