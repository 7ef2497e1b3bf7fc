package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/entity"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository"
)

type stockRepository struct {
	db *sql.DB
}

// NewStockRepository creates a new StockRepository backed by Postgres.
func NewStockRepository(db *sql.DB) repository.StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) ListTransactions(ctx context.Context) ([]entity.StockTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.product_id, t.supplier_id, t.quantity, t.type, t.date,
		        p.name AS product_name,
		        COALESCE(s.name, '') AS supplier_name
		 FROM transactions t
		 LEFT JOIN products p ON p.id = t.product_id
		 LEFT JOIN suppliers s ON s.id = t.supplier_id
		 ORDER BY t.date DESC, t.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		if err := rows.Scan(&t.ID, &t.ProductID, &t.SupplierID, &t.Quantity, &t.Type, &t.Date, &t.ProductName, &t.SupplierName); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
