// Package backoffice is the typed client for the external order-management
// REST API. Orders, products, applicants, staff and projects all live behind
// the same request/response conventions; orders and products get typed
// records, the admin-only resources go through the generic passthrough.
package backoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	ResourceOrders     = "orders"
	ResourceProducts   = "products"
	ResourceApplicants = "applicants"
	ResourceStaff      = "staff"
	ResourceProjects   = "projects"
)

type OrderItem struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// Order is the normalized order record. The customer field is the single
// source of the purchaser's name; there are no fallback aliases.
type Order struct {
	ID            string      `json:"id,omitempty"`
	Customer      string      `json:"customer"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	Items         []OrderItem `json:"items"`
	Total         float64     `json:"total"`
	Date          string      `json:"date"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"paymentMethod"`
}

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category,omitempty"`
}

type Client interface {
	CreateOrder(ctx context.Context, order *Order) (*Order, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
	UpdateOrder(ctx context.Context, id string, order *Order) (*Order, error)
	DeleteOrder(ctx context.Context, id string) error

	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)

	// generic CRUD for the uniform admin resources
	List(ctx context.Context, resource string) ([]map[string]any, error)
	Get(ctx context.Context, resource, id string) (map[string]any, error)
	Create(ctx context.Context, resource string, record map[string]any) (map[string]any, error)
	Update(ctx context.Context, resource, id string, record map[string]any) (map[string]any, error)
	Delete(ctx context.Context, resource, id string) error

	Ping(ctx context.Context) error
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) Client {
	return &client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *client) do(ctx context.Context, method, path string, in, out any) error {

	var body io.Reader

	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
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

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("back-office request failed: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return fmt.Errorf("back-office returned status %d: %s", resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode back-office response: %w", err)
	}

	return nil
}

func (c *client) CreateOrder(ctx context.Context, order *Order) (*Order, error) {
	created := &Order{}
	if err := c.do(ctx, http.MethodPost, "/orders", order, created); err != nil {
		return nil, err
	}

	return created, nil
}

func (c *client) GetOrder(ctx context.Context, id string) (*Order, error) {
	order := &Order{}
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (c *client) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (c *client) UpdateOrder(ctx context.Context, id string, order *Order) (*Order, error) {
	updated := &Order{}
	if err := c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id), order, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

func (c *client) DeleteOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/orders/"+url.PathEscape(id), nil, nil)
}

func (c *client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (c *client) GetProduct(ctx context.Context, id string) (*Product, error) {
	product := &Product{}
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (c *client) List(ctx context.Context, resource string) ([]map[string]any, error) {
	var records []map[string]any
	if err := c.do(ctx, http.MethodGet, "/"+resource, nil, &records); err != nil {
		return nil, err
	}

	return records, nil
}

func (c *client) Get(ctx context.Context, resource, id string) (map[string]any, error) {
	record := map[string]any{}
	if err := c.do(ctx, http.MethodGet, "/"+resource+"/"+url.PathEscape(id), nil, &record); err != nil {
		return nil, err
	}

	return record, nil
}

func (c *client) Create(ctx context.Context, resource string, record map[string]any) (map[string]any, error) {
	created := map[string]any{}
	if err := c.do(ctx, http.MethodPost, "/"+resource, record, &created); err != nil {
		return nil, err
	}

	return created, nil
}

func (c *client) Update(ctx context.Context, resource, id string, record map[string]any) (map[string]any, error) {
	updated := map[string]any{}
	if err := c.do(ctx, http.MethodPut, "/"+resource+"/"+url.PathEscape(id), record, &updated); err != nil {
		return nil, err
	}

	return updated, nil
}

func (c *client) Delete(ctx context.Context, resource, id string) error {
	return c.do(ctx, http.MethodDelete, "/"+resource+"/"+url.PathEscape(id), nil, nil)
}

// Ping asks for the order collection headlessly; used by the health check.
func (c *client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/orders", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("back-office unreachable: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("back-office returned status %d", resp.StatusCode)
	}

	return nil
}
