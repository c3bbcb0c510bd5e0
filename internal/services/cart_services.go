package services

import (
	"context"
	"errors"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/model"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/pricing"
)

type CartService struct {
	Carts CartStore
}

func NewCartService(cs CartStore) *CartService {
	return &CartService{Carts: cs}
}

func (s *CartService) Get(ctx context.Context, userID string) (*model.CartResponse, error) {
	items, err := s.Carts.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &model.CartResponse{
		Items:  items,
		Totals: pricing.Totals(items),
	}, nil
}

// Add puts qty of a product in the cart. A product already present has
// quantities merged, capped at the per-line maximum; adds beyond the cap
// are no-ops, not errors.
func (s *CartService) Add(ctx context.Context, userID, productID string, unitPrice int64, qty int) error {
	if productID == "" {
		return errors.New("product id is required")
	}
	if unitPrice <= 0 {
		return ErrInvalidPrice
	}
	if qty < pricing.MinQuantity {
		return ErrInvalidQuantity
	}
	qty = pricing.ClampQuantity(qty)

	existing, err := s.Carts.GetItem(ctx, userID, productID)
	if err != nil {
		return err
	}

	if existing == nil {
		return s.Carts.InsertItem(ctx, userID, model.CartLineItem{
			ProductID: productID,
			UnitPrice: unitPrice,
			Quantity:  qty,
		})
	}

	merged := existing.Quantity + qty
	if merged > pricing.MaxQuantity {
		merged = pricing.MaxQuantity
	}
	if merged == existing.Quantity {
		// already at the cap
		return nil
	}
	return s.Carts.SetQuantity(ctx, userID, productID, merged)
}

// UpdateQuantity sets a line's quantity. A quantity of zero or below
// removes the line entirely rather than leaving a zero-quantity entry.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, qty int) error {
	if qty <= 0 {
		return s.Carts.DeleteItem(ctx, userID, productID)
	}
	return s.Carts.SetQuantity(ctx, userID, productID, pricing.ClampQuantity(qty))
}

func (s *CartService) Remove(ctx context.Context, userID, productID string) error {
	return s.Carts.DeleteItem(ctx, userID, productID)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.Carts.Clear(ctx, userID)
}
