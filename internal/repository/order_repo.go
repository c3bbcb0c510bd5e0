package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/model"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository struct {
	DB    *pgxpool.Pool
	Carts *CartRepository
}

func NewOrderRepository(db *pgxpool.Pool, cr *CartRepository) *OrderRepository {
	return &OrderRepository{DB: db, Carts: cr}
}

// PersistCheckout writes the order and clears the user's cart in one
// transaction. If the insert fails the cart is untouched and the user
// can retry checkout.
func (r *OrderRepository) PersistCheckout(ctx context.Context, o *model.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	totals, err := json.Marshal(o.Totals)
	if err != nil {
		return err
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	q := `
		INSERT INTO orders
			(ordernumber, userid, items, totals, paymentmethod,
			 providerorderid, providerpayid, status, needsreconciliation, createdat)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`
	if _, err := tx.Exec(
		ctx, q,
		o.OrderNumber, o.UserID, items, totals, o.PaymentMethod,
		o.ProviderOrderID, o.ProviderPayID, o.Status, o.NeedsReconciliation,
	); err != nil {
		return err
	}

	if err := r.Carts.ClearTx(ctx, tx, o.UserID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// MarkPaidByProviderOrder flips a pending order to paid when the
// provider's webhook confirms capture. Orders already paid are left
// alone; an unknown provider order id is reported as not found.
func (r *OrderRepository) MarkPaidByProviderOrder(ctx context.Context, providerOrderID string) error {
	q := `
		UPDATE orders
		SET status='paid', needsreconciliation=FALSE
		WHERE providerorderid=$1 AND status='pending'
	`
	tag, err := r.DB.Exec(ctx, q, providerOrderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		q := `SELECT EXISTS(SELECT 1 FROM orders WHERE providerorderid=$1)`
		if err := r.DB.QueryRow(ctx, q, providerOrderID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrOrderNotFound
		}
		// already paid; webhook retries are safe to ignore
	}
	return nil
}

func (r *OrderRepository) ListNeedingReconciliation(ctx context.Context) ([]model.Order, error) {
	q := `
		SELECT ordernumber, userid, items, totals, paymentmethod,
		       providerorderid, providerpayid, status, needsreconciliation, createdat
		FROM orders
		WHERE needsreconciliation=TRUE
		ORDER BY createdat
	`
	rows, err := r.DB.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var (
			o      model.Order
			items  []byte
			totals []byte
		)
		if err := rows.Scan(
			&o.OrderNumber,
			&o.UserID,
			&items,
			&totals,
			&o.PaymentMethod,
			&o.ProviderOrderID,
			&o.ProviderPayID,
			&o.Status,
			&o.NeedsReconciliation,
			&o.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(totals, &o.Totals); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
