package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/model"
)

// CartRepository holds the authoritative server-side cart state. Charge
// amounts are always recomputed from these rows, never from request bodies.
type CartRepository struct {
	DB *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{DB: db}
}

func (r *CartRepository) GetItems(ctx context.Context, userID string) ([]model.CartLineItem, error) {
	q := `
		SELECT productid, unitprice, quantity
		FROM cart_items
		WHERE userid=$1
		ORDER BY productid
	`
	rows, err := r.DB.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.CartLineItem
	for rows.Next() {
		var it model.CartLineItem
		if err := rows.Scan(&it.ProductID, &it.UnitPrice, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetItem returns nil when the product is not in the cart.
func (r *CartRepository) GetItem(ctx context.Context, userID, productID string) (*model.CartLineItem, error) {
	var it model.CartLineItem

	q := `
		SELECT productid, unitprice, quantity
		FROM cart_items
		WHERE userid=$1 AND productid=$2
	`
	err := r.DB.QueryRow(ctx, q, userID, productID).Scan(
		&it.ProductID,
		&it.UnitPrice,
		&it.Quantity,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CartRepository) InsertItem(ctx context.Context, userID string, item model.CartLineItem) error {
	q := `
		INSERT INTO cart_items (userid, productid, unitprice, quantity)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.Exec(ctx, q, userID, item.ProductID, item.UnitPrice, item.Quantity)
	return err
}

func (r *CartRepository) SetQuantity(ctx context.Context, userID, productID string, qty int) error {
	q := `
		UPDATE cart_items
		SET quantity=$3
		WHERE userid=$1 AND productid=$2
	`
	tag, err := r.DB.Exec(ctx, q, userID, productID, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("item not in cart")
	}
	return nil
}

func (r *CartRepository) DeleteItem(ctx context.Context, userID, productID string) error {
	q := `DELETE FROM cart_items WHERE userid=$1 AND productid=$2`
	_, err := r.DB.Exec(ctx, q, userID, productID)
	return err
}

func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	q := `DELETE FROM cart_items WHERE userid=$1`
	_, err := r.DB.Exec(ctx, q, userID)
	return err
}

// ClearTx clears the cart inside the caller's transaction, so the cart
// survives intact when order persistence rolls back.
func (r *CartRepository) ClearTx(ctx context.Context, tx pgx.Tx, userID string) error {
	q := `DELETE FROM cart_items WHERE userid=$1`
	_, err := tx.Exec(ctx, q, userID)
	return err
}
