package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/entity"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository"
)

const (
	allProductsCacheKey = "all_products"
	productCacheTTL     = 5 * time.Minute
)

// ProductService handles catalog administration and reads. Listing goes
// through an optional Redis cache; every mutation invalidates it.
type ProductService struct {
	products repository.ProductRepository
	cache    *redis.Client // nil disables caching
	logger   *zap.Logger
}

func NewProductService(products repository.ProductRepository, cache *redis.Client, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, cache: cache, logger: logger}
}

// List returns the full catalog, newest products first.
func (s *ProductService) List(ctx context.Context) ([]entity.Product, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, allProductsCacheKey).Result(); err == nil {
			var products []entity.Product
			if json.Unmarshal([]byte(data), &products) == nil {
				return products, nil
			}
		}
	}

	products, err := s.products.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list products", zap.Error(err))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(products); err == nil {
			go s.cache.Set(context.Background(), allProductsCacheKey, data, productCacheTTL)
		}
	}
	return products, nil
}

// Get returns one product by ID.
func (s *ProductService) Get(ctx context.Context, id int64) (entity.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return entity.Product{}, fmt.Errorf("%w: product %d", ErrProductNotFound, id)
	}
	if err != nil {
		s.logger.Error("failed to get product", zap.Int64("product_id", id), zap.Error(err))
		return entity.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// Create adds a product; MinQuantity defaults when unset.
func (s *ProductService) Create(ctx context.Context, p *entity.Product) (int64, error) {
	if p.Name == "" {
		return 0, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if p.Price < 0 {
		return 0, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if p.Quantity < 0 {
		return 0, fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	id, err := s.products.Create(ctx, p)
	if err != nil {
		s.logger.Error("failed to create product", zap.Error(err))
		return 0, fmt.Errorf("failed to create product: %w", err)
	}
	s.invalidate(ctx, id)
	return id, nil
}

// Update replaces a product's attributes.
func (s *ProductService) Update(ctx context.Context, p entity.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if p.Price < 0 || p.Quantity < 0 {
		return fmt.Errorf("%w: price and quantity must not be negative", ErrInvalidInput)
	}
	err := s.products.Update(ctx, p)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: product %d", ErrProductNotFound, p.ID)
	}
	if err != nil {
		s.logger.Error("failed to update product", zap.Int64("product_id", p.ID), zap.Error(err))
		return fmt.Errorf("failed to update product: %w", err)
	}
	s.invalidate(ctx, p.ID)
	return nil
}

// Delete removes a product from the catalog. Order items keep their own
// snapshot columns, so history is unaffected.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete product", zap.Int64("product_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, allProductsCacheKey, fmt.Sprintf("product:%d", id)).Err(); err != nil {
		s.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}
