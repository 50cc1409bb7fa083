// Package mocks holds a hand-written testify mock for the back-office
// client interface.
package mocks

import (
	"context"

	"github.com/dreamworldhq/storefront/pkg/backoffice"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (m *Client) CreateOrder(ctx context.Context, order *backoffice.Order) (*backoffice.Order, error) {
	args := m.Called(ctx, order)

	if created, ok := args.Get(0).(*backoffice.Order); ok {
		return created, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *Client) GetOrder(ctx context.Context, id string) (*backoffice.Order, error) {
	args := m.Called(ctx, id)

	if order, ok := args.Get(0).(*backoffice.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *Client) ListOrders(ctx context.Context) ([]backoffice.Order, error) {
	args := m.Called(ctx)

	if orders, ok := args.Get(0).([]backoffice.Order); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *Client) UpdateOrder(ctx context.Context, id string, order *backoffice.Order) (*backoffice.Order, error) {
	args := m.Called(ctx, id, order)

	if updated, ok := args.Get(0).(*backoffice.Order); ok {
		return updated, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *Client) DeleteOrder(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *Client) ListProducts(ctx context.Context) ([]backoffice.Product, error) {
	args := m.Called(ctx)

	if products, ok := args.Get(0).([]backoffice.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *Client) GetProduct(ctx context.Context, id string) (*backoffice.Product, error) {
	args := m.Called(ctx, id)

	if product, ok := args.Get(0).(*backoffice.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *Client) List(ctx context.Context, resource string) ([]map[string]any, error) {
	args := m.Called(ctx, resource)

	if records, ok := args.Get(0).([]map[string]any); ok {
		return records, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *Client) Get(ctx context.Context, resource, id string) (map[string]any, error) {
	args := m.Called(ctx, resource, id)

	if record, ok := args.Get(0).(map[string]any); ok {
		return record, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *Client) Create(ctx context.Context, resource string, record map[string]any) (map[string]any, error) {
	args := m.Called(ctx, resource, record)

	if created, ok := args.Get(0).(map[string]any); ok {
		return created, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *Client) Update(ctx context.Context, resource, id string, record map[string]any) (map[string]any, error) {
	args := m.Called(ctx, resource, id, record)

	if updated, ok := args.Get(0).(map[string]any); ok {
		return updated, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *Client) Delete(ctx context.Context, resource, id string) error {
	args := m.Called(ctx, resource, id)

	return args.Error(0)
}

func (m *Client) Ping(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}
