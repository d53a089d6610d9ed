package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"

	backenderrors "orderfront/internal/backend"
	"orderfront/internal/models"
	"orderfront/pkg/lib/logger/sl"
)

// TokenSource hands out the current bearer token. A missing token is
// reported before any request leaves the process.
type TokenSource interface {
	Token() (string, error)
}

type Client struct {
	log        *slog.Logger
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	validate   *validator.Validate
}

func New(log *slog.Logger, baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		log:     log,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens:   tokens,
		validate: validator.New(),
	}
}

type AddCartItemRequest struct {
	MenuId   string `json:"menu_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
	Note     string `json:"note,omitempty"`
}

// UpdateCartItemRequest is a partial update, nil fields are left alone
// server-side.
type UpdateCartItemRequest struct {
	Quantity *int    `json:"quantity,omitempty"`
	Note     *string `json:"note,omitempty"`
}

type CreateOrderRequest struct {
	Items      []models.OrderItem `json:"items" validate:"required,min=1,dive"`
	Note       string             `json:"note"`
	TotalPrice int64              `json:"total_price" validate:"gte=0"`
}

type PayRequest struct {
	Method models.PaymentMethod `json:"method" validate:"required,oneof=cash card bank_transfer"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string      `json:"token" validate:"required"`
	User  models.User `json:"user"`
}

func (c *Client) ListCart(ctx context.Context) ([]models.CartItem, error) {
	const op = "backend.rest.ListCart"

	var items []models.CartItem
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &items, true); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, it := range items {
		if err := c.validate.Struct(it); err != nil {
			c.log.With("op", op).Warn("Invalid cart item in response", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, backenderrors.ErrMalformedResponse)
		}
	}
	return items, nil
}

func (c *Client) AddCartItem(ctx context.Context, req AddCartItemRequest) (models.CartItem, error) {
	const op = "backend.rest.AddCartItem"

	if err := c.validate.Struct(req); err != nil {
		return models.CartItem{}, fmt.Errorf("%s: %w", op, backenderrors.ErrBadRequest)
	}

	var item models.CartItem
	if err := c.do(ctx, http.MethodPost, "/cart", req, &item, true); err != nil {
		return models.CartItem{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := c.validate.Struct(item); err != nil {
		c.log.With("op", op).Warn("Invalid cart item in response", sl.Err(err))
		return models.CartItem{}, fmt.Errorf("%s: %w", op, backenderrors.ErrMalformedResponse)
	}
	return item, nil
}

func (c *Client) UpdateCartItem(ctx context.Context, itemId string, req UpdateCartItemRequest) (models.CartItem, error) {
	const op = "backend.rest.UpdateCartItem"

	var item models.CartItem
	path := "/cart/" + url.PathEscape(itemId)
	if err := c.do(ctx, http.MethodPut, path, req, &item, true); err != nil {
		return models.CartItem{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := c.validate.Struct(item); err != nil {
		c.log.With("op", op).Warn("Invalid cart item in response", sl.Err(err))
		return models.CartItem{}, fmt.Errorf("%s: %w", op, backenderrors.ErrMalformedResponse)
	}
	return item, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, itemId string) error {
	const op = "backend.rest.RemoveCartItem"

	path := "/cart/" + url.PathEscape(itemId)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, true); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) ClearCart(ctx context.Context) error {
	const op = "backend.rest.ClearCart"

	if err := c.do(ctx, http.MethodDelete, "/cart", nil, nil, true); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateOrder submits the order and refuses to treat a 2xx body without
// a server-assigned id as success.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (models.Order, error) {
	const op = "backend.rest.CreateOrder"

	if err := c.validate.Struct(req); err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, backenderrors.ErrBadRequest)
	}

	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order, true); err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := c.validate.Struct(order); err != nil {
		c.log.With("op", op).Warn("Order response missing required fields", sl.Err(err))
		return models.Order{}, fmt.Errorf("%s: %w", op, backenderrors.ErrMalformedResponse)
	}
	return order, nil
}

func (c *Client) PayOrder(ctx context.Context, orderId string, method models.PaymentMethod) (models.Payment, error) {
	const op = "backend.rest.PayOrder"

	req := PayRequest{Method: method}
	if err := c.validate.Struct(req); err != nil {
		return models.Payment{}, fmt.Errorf("%s: %w", op, backenderrors.ErrBadRequest)
	}

	var payment models.Payment
	path := "/payments/" + url.PathEscape(orderId) + "/pay"
	if err := c.do(ctx, http.MethodPost, path, req, &payment, true); err != nil {
		return models.Payment{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := c.validate.Struct(payment); err != nil {
		c.log.With("op", op).Warn("Payment response missing required fields", sl.Err(err))
		return models.Payment{}, fmt.Errorf("%s: %w", op, backenderrors.ErrMalformedResponse)
	}
	return payment, nil
}

func (c *Client) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	const op = "backend.rest.ListMenu"

	var items []models.MenuItem
	if err := c.do(ctx, http.MethodGet, "/menu", nil, &items, false); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func (c *Client) GetMenuItem(ctx context.Context, menuId string) (models.MenuItem, error) {
	const op = "backend.rest.GetMenuItem"

	var item models.MenuItem
	path := "/menu/" + url.PathEscape(menuId)
	if err := c.do(ctx, http.MethodGet, path, nil, &item, false); err != nil {
		return models.MenuItem{}, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	const op = "backend.rest.ListCategories"

	var cats []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &cats, false); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cats, nil
}

func (c *Client) ListPosters(ctx context.Context) ([]models.Poster, error) {
	const op = "backend.rest.ListPosters"

	var posters []models.Poster
	if err := c.do(ctx, http.MethodGet, "/posters", nil, &posters, false); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return posters, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	const op = "backend.rest.Login"

	if err := c.validate.Struct(req); err != nil {
		return LoginResponse{}, fmt.Errorf("%s: %w", op, backenderrors.ErrBadRequest)
	}

	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp, false); err != nil {
		return LoginResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := c.validate.Struct(resp); err != nil {
		c.log.With("op", op).Warn("Login response missing token", sl.Err(err))
		return LoginResponse{}, fmt.Errorf("%s: %w", op, backenderrors.ErrMalformedResponse)
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, in any, out any, authed bool) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token, err := c.tokens.Token()
		if err != nil {
			return backenderrors.ErrUnauthorized
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%w: %v", backenderrors.ErrMalformedResponse, err)
		}
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return backenderrors.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return backenderrors.ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", backenderrors.ErrBadRequest, string(respBody))
	default:
		return fmt.Errorf("%w: %d", backenderrors.ErrUnexpectedStatus, resp.StatusCode)
	}
}
