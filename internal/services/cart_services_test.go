package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/model"
)

func TestCartService_AddNewLine(t *testing.T) {
	carts := &MockCartStore{}
	svc := NewCartService(carts)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", "cpu-7800x3d", 38999, 2))

	require.Len(t, carts.Items, 1)
	assert.Equal(t, 2, carts.Items[0].Quantity)
}

func TestCartService_AddMergesAndCaps(t *testing.T) {
	carts := &MockCartStore{}
	svc := NewCartService(carts)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "u1", "ram-32gb", 8999, 6))
	require.NoError(t, svc.Add(ctx, "u1", "ram-32gb", 8999, 6))

	require.Len(t, carts.Items, 1)
	assert.Equal(t, 10, carts.Items[0].Quantity)

	// Beyond the cap, identical adds are no-ops, not errors.
	require.NoError(t, svc.Add(ctx, "u1", "ram-32gb", 8999, 3))
	require.NoError(t, svc.Add(ctx, "u1", "ram-32gb", 8999, 3))
	assert.Equal(t, 10, carts.Items[0].Quantity)
}

func TestCartService_AddValidates(t *testing.T) {
	svc := NewCartService(&MockCartStore{})
	ctx := context.Background()

	assert.ErrorIs(t, svc.Add(ctx, "u1", "ssd-2tb", 12999, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, svc.Add(ctx, "u1", "ssd-2tb", 12999, -1), ErrInvalidQuantity)
	assert.ErrorIs(t, svc.Add(ctx, "u1", "ssd-2tb", 0, 1), ErrInvalidPrice)
	assert.ErrorIs(t, svc.Add(ctx, "u1", "ssd-2tb", -50, 1), ErrInvalidPrice)
	assert.Error(t, svc.Add(ctx, "u1", "", 12999, 1))
}

func TestCartService_AddClampsOversizedQuantity(t *testing.T) {
	carts := &MockCartStore{}
	svc := NewCartService(carts)

	require.NoError(t, svc.Add(context.Background(), "u1", "psu-850w", 9499, 25))

	require.Len(t, carts.Items, 1)
	assert.Equal(t, 10, carts.Items[0].Quantity)
}

func TestCartService_UpdateQuantityZeroRemovesLine(t *testing.T) {
	carts := &MockCartStore{Items: []model.CartLineItem{
		{ProductID: "mobo-b650", UnitPrice: 15999, Quantity: 2},
	}}
	svc := NewCartService(carts)

	require.NoError(t, svc.UpdateQuantity(context.Background(), "u1", "mobo-b650", 0))

	assert.Empty(t, carts.Items)
}

func TestCartService_GetComputesTotals(t *testing.T) {
	carts := &MockCartStore{Items: []model.CartLineItem{
		{ProductID: "gpu-4070", UnitPrice: 100000, Quantity: 2},
	}}
	svc := NewCartService(carts)

	resp, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, int64(200000), resp.Totals.Subtotal)
	assert.Equal(t, int64(36000), resp.Totals.TaxAmount)
	assert.Equal(t, int64(236000), resp.Totals.GrandTotal)
}
