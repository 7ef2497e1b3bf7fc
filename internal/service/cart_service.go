package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/entity"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository"
)

// CartService manages a user's pending-order selections. Mutations are
// single-row; only placement (OrderService) needs the full unit of work.
type CartService struct {
	cart     repository.CartRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewCartService(cart repository.CartRepository, products repository.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{cart: cart, products: products, logger: logger}
}

// Lines returns the user's cart joined with current product names and prices.
func (s *CartService) Lines(ctx context.Context, userID int64) ([]entity.CartLine, error) {
	lines, err := s.cart.Lines(ctx, userID)
	if err != nil {
		s.logger.Error("failed to read cart", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	return lines, nil
}

// Add upserts a cart entry: +1 on an existing entry, otherwise a new entry
// with quantity one. The product must exist.
func (s *CartService) Add(ctx context.Context, userID, productID int64) error {
	if productID <= 0 {
		return fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: product %d", ErrProductNotFound, productID)
		}
		s.logger.Error("failed to check product", zap.Int64("product_id", productID), zap.Error(err))
		return fmt.Errorf("failed to add to cart: %w", err)
	}
	if err := s.cart.Add(ctx, userID, productID); err != nil {
		s.logger.Error("failed to add to cart", zap.Int64("user_id", userID), zap.Int64("product_id", productID), zap.Error(err))
		return fmt.Errorf("failed to add to cart: %w", err)
	}
	return nil
}

// UpdateQuantity adds delta (signed) to the entry; entries ending at zero or
// below are removed rather than kept.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID int64, delta int) error {
	if productID <= 0 {
		return fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	if delta == 0 {
		return fmt.Errorf("%w: delta must be non-zero", ErrInvalidInput)
	}
	if err := s.cart.UpdateQuantity(ctx, userID, productID, delta); err != nil {
		s.logger.Error("failed to update cart quantity", zap.Int64("user_id", userID), zap.Int64("product_id", productID), zap.Error(err))
		return fmt.Errorf("failed to update cart quantity: %w", err)
	}
	return nil
}

// Remove deletes the entry unconditionally.
func (s *CartService) Remove(ctx context.Context, userID, productID int64) error {
	if productID <= 0 {
		return fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	if err := s.cart.Remove(ctx, userID, productID); err != nil {
		s.logger.Error("failed to remove cart entry", zap.Int64("user_id", userID), zap.Int64("product_id", productID), zap.Error(err))
		return fmt.Errorf("failed to remove cart entry: %w", err)
	}
	return nil
}
