// Package mocks holds hand-written testify mocks for the service
// interfaces, used by the handler tests.
package mocks

import (
	"context"

	"github.com/dreamworldhq/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)

	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, req)

	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) (*models.Cart, error) {
	args := m.Called(ctx, userID, productID)

	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int) (*models.Cart, error) {
	args := m.Called(ctx, userID, productID, quantity)

	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

type CheckoutService struct {
	mock.Mock
}

func (m *CheckoutService) Submit(ctx context.Context, userID uuid.UUID, form *models.PaymentForm) (*models.OrderSnapshot, error) {
	args := m.Called(ctx, userID, form)

	if snapshot, ok := args.Get(0).(*models.OrderSnapshot); ok {
		return snapshot, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CheckoutService) GetSnapshot(ctx context.Context, userID, snapshotID uuid.UUID) (*models.OrderSnapshot, error) {
	args := m.Called(ctx, userID, snapshotID)

	if snapshot, ok := args.Get(0).(*models.OrderSnapshot); ok {
		return snapshot, args.Error(1)
	}

	return nil, args.Error(1)
}

type UserService struct {
	mock.Mock
}

func (m *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)

	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)

	if resp, ok := args.Get(0).(*models.LoginResponse); ok {
		return resp, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)

	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

type OAuthService struct {
	mock.Mock
}

func (m *OAuthService) BeginGitHub(ctx context.Context) (string, error) {
	args := m.Called(ctx)

	return args.String(0), args.Error(1)
}

func (m *OAuthService) CompleteGitHub(ctx context.Context, code, state string) (*models.LoginResponse, error) {
	args := m.Called(ctx, code, state)

	if resp, ok := args.Get(0).(*models.LoginResponse); ok {
		return resp, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *OAuthService) GoogleSignIn(ctx context.Context, accessToken string) (*models.LoginResponse, error) {
	args := m.Called(ctx, accessToken)

	if resp, ok := args.Get(0).(*models.LoginResponse); ok {
		return resp, args.Error(1)
	}

	return nil, args.Error(1)
}
