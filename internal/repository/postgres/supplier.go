package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/entity"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository"
)

type supplierRepository struct {
	db *sql.DB
}

// NewSupplierRepository creates a new SupplierRepository backed by Postgres.
func NewSupplierRepository(db *sql.DB) repository.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, s *entity.Supplier) (int64, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO suppliers (name, contact, address) VALUES ($1, $2, $3) RETURNING id",
		s.Name, s.Contact, s.Address,
	).Scan(&s.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert supplier: %w", err)
	}
	return s.ID, nil
}

func (r *supplierRepository) FindAll(ctx context.Context) ([]entity.Supplier, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, contact, address FROM suppliers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Contact, &s.Address); err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}
