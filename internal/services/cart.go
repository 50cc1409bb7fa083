package service

import (
	"context"

	"github.com/dreamworldhq/storefront/internal/errors"
	"github.com/dreamworldhq/storefront/internal/models"
	repository "github.com/dreamworldhq/storefront/internal/repositories"
	"github.com/google/uuid"
)

// CartService owns all cart mutation. Every mutating call re-persists the
// whole cart synchronously after the in-memory update.
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID string) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int) (*models.Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	repo repository.CartRepository
}

func NewCartService(repo repository.CartRepository) CartService {
	return &cartService{repo: repo}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {

	cart, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	return cart, nil
}

// AddItem increments the quantity of an existing line item by one, or
// appends a new line item with quantity one. A cart never holds two line
// items for the same product.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {

	cart, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	found := false

	for i := range cart.Items {
		if cart.Items[i].ProductID == req.ProductID {
			cart.Items[i].Quantity++
			found = true

			break
		}
	}

	if !found {
		cart.Items = append(cart.Items, models.LineItem{
			ProductID:   req.ProductID,
			Name:        req.Name,
			Description: req.Description,
			UnitPrice:   req.UnitPrice,
			Quantity:    1,
		})
	}

	if err := s.repo.Save(ctx, userID, cart); err != nil {
		return nil, errors.DatabaseError("Failed to persist cart").WithError(err)
	}

	return cart, nil
}

// RemoveItem deletes the matching line item. Removing an absent product is
// a no-op, not an error.
func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) (*models.Cart, error) {

	cart, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	filtered := cart.Items[:0]

	for _, item := range cart.Items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}

	cart.Items = filtered

	if err := s.repo.Save(ctx, userID, cart); err != nil {
		return nil, errors.DatabaseError("Failed to persist cart").WithError(err)
	}

	return cart, nil
}

// UpdateQuantity sets the quantity of the matching line item, clamped to a
// floor of one. Reducing a quantity below one never removes the item; that
// takes an explicit RemoveItem. Absent product is a no-op.
func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int) (*models.Cart, error) {

	cart, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = max(1, quantity)

			break
		}
	}

	if err := s.repo.Save(ctx, userID, cart); err != nil {
		return nil, errors.DatabaseError("Failed to persist cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {

	if err := s.repo.Save(ctx, userID, models.NewCart()); err != nil {
		return errors.DatabaseError("Failed to persist cart").WithError(err)
	}

	return nil
}
