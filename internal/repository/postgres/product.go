package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/entity"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository"
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository backed by Postgres.
func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *entity.Product) (int64, error) {
	if p.MinQuantity <= 0 {
		p.MinQuantity = entity.DefaultMinQuantity
	}
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO products (name, category, price, quantity, min_quantity, created_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
		p.Name, p.Category, p.Price, p.Quantity, p.MinQuantity, time.Now(),
	).Scan(&p.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}
	return p.ID, nil
}

func (r *productRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, category, price, quantity, min_quantity, created_at FROM products ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Quantity, &p.MinQuantity, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (entity.Product, error) {
	var p entity.Product
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, category, price, quantity, min_quantity, created_at FROM products WHERE id = $1",
		id,
	).Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Quantity, &p.MinQuantity, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return entity.Product{}, repository.ErrNotFound
	}
	if err != nil {
		return entity.Product{}, fmt.Errorf("failed to query product: %w", err)
	}
	return p, nil
}

func (r *productRepository) Update(ctx context.Context, p entity.Product) error {
	if p.MinQuantity <= 0 {
		p.MinQuantity = entity.DefaultMinQuantity
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE products SET name = $1, category = $2, price = $3, quantity = $4, min_quantity = $5 WHERE id = $6",
		p.Name, p.Category, p.Price, p.Quantity, p.MinQuantity, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
