package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/entity"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository"
)

type store struct {
	db *sql.DB
}

// NewStore creates a Store that runs units of work as Postgres transactions.
func NewStore(db *sql.DB) repository.Store {
	return &store{db: db}
}

func (s *store) RunInTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&storeTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type storeTx struct {
	tx *sql.Tx
}

func (t *storeTx) CartLines(ctx context.Context, userID int64) ([]entity.CartLine, error) {
	rows, err := t.tx.QueryContext(ctx,
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

func (t *storeTx) ClearCart(ctx context.Context, userID int64) error {
	_, err := t.tx.ExecContext(ctx, "DELETE FROM cart WHERE user_id = $1", userID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (t *storeTx) CreateOrder(ctx context.Context, order *entity.Order) (int64, error) {
	err := t.tx.QueryRowContext(ctx,
		"INSERT INTO orders (user_id, total_amount, status, created_at) VALUES ($1, $2, $3, $4) RETURNING id",
		order.UserID, order.TotalAmount, order.Status, order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}
	return order.ID, nil
}

func (t *storeTx) CreateOrderItem(ctx context.Context, item *entity.OrderItem) error {
	err := t.tx.QueryRowContext(ctx,
		"INSERT INTO order_items (order_id, product_id, quantity, price) VALUES ($1, $2, $3, $4) RETURNING id",
		item.OrderID, item.ProductID, item.Quantity, item.Price,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order item: %w", err)
	}
	return nil
}

func (t *storeTx) ProductForUpdate(ctx context.Context, productID int64) (entity.Product, error) {
	var p entity.Product
	err := t.tx.QueryRowContext(ctx,
		"SELECT id, name, category, price, quantity, min_quantity FROM products WHERE id = $1 FOR UPDATE",
		productID,
	).Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Quantity, &p.MinQuantity)
	if err == sql.ErrNoRows {
		return entity.Product{}, repository.ErrNotFound
	}
	if err != nil {
		return entity.Product{}, fmt.Errorf("failed to lock product row: %w", err)
	}
	return p, nil
}

func (t *storeTx) SetProductQuantity(ctx context.Context, productID int64, quantity int) error {
	_, err := t.tx.ExecContext(ctx,
		"UPDATE products SET quantity = $1 WHERE id = $2",
		quantity, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product quantity: %w", err)
	}
	return nil
}

func (t *storeTx) AddProductQuantity(ctx context.Context, productID int64, delta int) error {
	_, err := t.tx.ExecContext(ctx,
		"UPDATE products SET quantity = quantity + $1 WHERE id = $2",
		delta, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to adjust product quantity: %w", err)
	}
	return nil
}

func (t *storeTx) CreateStockTransaction(ctx context.Context, txn *entity.StockTransaction) (int64, error) {
	err := t.tx.QueryRowContext(ctx,
		"INSERT INTO transactions (product_id, supplier_id, quantity, type, date) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		txn.ProductID, txn.SupplierID, txn.Quantity, txn.Type, txn.Date,
	).Scan(&txn.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return txn.ID, nil
}

func (t *storeTx) AppendInventoryLog(ctx context.Context, log *entity.InventoryLog) error {
	err := t.tx.QueryRowContext(ctx,
		"INSERT INTO inventory_logs (product_id, change_amount, action, created_at) VALUES ($1, $2, $3, $4) RETURNING id",
		log.ProductID, log.ChangeAmount, log.Action, log.CreatedAt,
	).Scan(&log.ID)
	if err != nil {
		return fmt.Errorf("failed to insert inventory log: %w", err)
	}
	return nil
}
