package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/entity"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository"
)

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new ReportRepository backed by Postgres.
func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Summary(ctx context.Context) (entity.ReportSummary, error) {
	var s entity.ReportSummary

	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(quantity * price), 0) FROM products",
	).Scan(&s.TotalProducts, &s.TotalStock, &s.StockValue)
	if err != nil {
		return entity.ReportSummary{}, fmt.Errorf("failed to aggregate products: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, category, price, quantity, min_quantity, created_at FROM products WHERE quantity <= min_quantity ORDER BY quantity ASC",
	)
	if err != nil {
		return entity.ReportSummary{}, fmt.Errorf("failed to query low stock: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Quantity, &p.MinQuantity, &p.CreatedAt); err != nil {
			return entity.ReportSummary{}, fmt.Errorf("failed to scan low stock product: %w", err)
		}
		s.LowStock = append(s.LowStock, p)
	}
	return s, rows.Err()
}
