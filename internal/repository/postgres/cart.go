package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/entity"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository"
)

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new CartRepository backed by Postgres.
func NewCartRepository(db *sql.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Lines(ctx context.Context, userID int64) ([]entity.CartLine, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.product_id, p.name, c.quantity, p.price
		 FROM cart c
		 JOIN products p ON c.product_id = p.id
		 WHERE c.user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	var lines []entity.CartLine
	for rows.Next() {
		var l entity.CartLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Quantity, &l.Price); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *cartRepository) Add(ctx context.Context, userID, productID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO cart (user_id, product_id, quantity) VALUES ($1, $2, 1)
		 ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = cart.quantity + 1`,
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to add to cart: %w", err)
	}
	return nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, userID, productID int64, delta int) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE cart SET quantity = quantity + $1 WHERE user_id = $2 AND product_id = $3",
		delta, userID, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cart quantity: %w", err)
	}

	// Entries driven to zero or below are removed rather than persisted.
	_, err = r.db.ExecContext(ctx,
		"DELETE FROM cart WHERE quantity <= 0 AND user_id = $1",
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to prune empty cart entries: %w", err)
	}
	return nil
}

func (r *cartRepository) Remove(ctx context.Context, userID, productID int64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM cart WHERE user_id = $1 AND product_id = $2",
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove cart entry: %w", err)
	}
	return nil
}
