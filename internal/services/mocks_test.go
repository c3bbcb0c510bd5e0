package services

import (
	"context"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/model"
)

// MockCartStore implements CartStore over a plain slice.
type MockCartStore struct {
	Items   []model.CartLineItem
	GetErr  error
	Cleared bool
}

func (m *MockCartStore) GetItems(_ context.Context, _ string) ([]model.CartLineItem, error) {
	return m.Items, m.GetErr
}

func (m *MockCartStore) GetItem(_ context.Context, _, productID string) (*model.CartLineItem, error) {
	for i := range m.Items {
		if m.Items[i].ProductID == productID {
			return &m.Items[i], nil
		}
	}
	return nil, nil
}

func (m *MockCartStore) InsertItem(_ context.Context, _ string, item model.CartLineItem) error {
	m.Items = append(m.Items, item)
	return nil
}

func (m *MockCartStore) SetQuantity(_ context.Context, _, productID string, qty int) error {
	for i := range m.Items {
		if m.Items[i].ProductID == productID {
			m.Items[i].Quantity = qty
		}
	}
	return nil
}

func (m *MockCartStore) DeleteItem(_ context.Context, _, productID string) error {
	kept := m.Items[:0]
	for _, it := range m.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	m.Items = kept
	return nil
}

func (m *MockCartStore) Clear(_ context.Context, _ string) error {
	m.Items = nil
	m.Cleared = true
	return nil
}

// MockOrderStore captures the persisted order and clears the cart the
// way the real repository does, inside the same call.
type MockOrderStore struct {
	Carts      *MockCartStore
	Persisted  *model.Order
	PersistErr error

	PaidProviderOrders []string
	MarkPaidErr        error

	Reconciliation []model.Order
}

func (m *MockOrderStore) PersistCheckout(ctx context.Context, o *model.Order) error {
	if m.PersistErr != nil {
		return m.PersistErr
	}
	m.Persisted = o
	if m.Carts != nil {
		return m.Carts.Clear(ctx, o.UserID)
	}
	return nil
}

func (m *MockOrderStore) MarkPaidByProviderOrder(_ context.Context, providerOrderID string) error {
	if m.MarkPaidErr != nil {
		return m.MarkPaidErr
	}
	m.PaidProviderOrders = append(m.PaidProviderOrders, providerOrderID)
	return nil
}

func (m *MockOrderStore) ListNeedingReconciliation(_ context.Context) ([]model.Order, error) {
	return m.Reconciliation, nil
}

// MockProvider captures the amount the broker asked the provider to charge.
type MockProvider struct {
	CreatedAmount  int64
	CreatedReceipt string
	Err            error
}

func (m *MockProvider) CreateOrder(amount int64, currency, receipt string, _ map[string]interface{}) (*model.PaymentOrder, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.CreatedAmount = amount
	m.CreatedReceipt = receipt
	return &model.PaymentOrder{
		ID:       "order_mock001",
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}

// MockMailer records reconciliation alerts.
type MockMailer struct {
	Alerts []string // order numbers
	Err    error
}

func (m *MockMailer) SendReconciliationAlert(_ context.Context, _, orderNumber, _ string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Alerts = append(m.Alerts, orderNumber)
	return nil
}
