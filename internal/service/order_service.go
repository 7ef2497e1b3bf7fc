package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/entity"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/messaging"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/metrics"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository"
)

// OrderService converts carts into orders. Placement is the only operation
// that touches cart, order, order item, and product rows together, so it
// runs as a single unit of work.
type OrderService struct {
	store     repository.Store
	orders    repository.OrderRepository
	publisher messaging.Publisher
	logger    *zap.Logger
}

func NewOrderService(
	store repository.Store,
	orders repository.OrderRepository,
	publisher messaging.Publisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		store:     store,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
	}
}

// PlaceOrder atomically turns the user's cart into an order: it snapshots
// prices, creates the order and its line items, decrements stock with a
// locked read per product, and clears the cart. Stock can never go negative;
// a cart entry exceeding available stock aborts the whole placement.
func (s *OrderService) PlaceOrder(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	var (
		order    entity.Order
		items    []entity.OrderItem
		lowStock []entity.LowStockDetected
	)

	err := s.store.RunInTx(ctx, func(tx repository.Tx) error {
		lines, err := tx.CartLines(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		var total float64
		for _, l := range lines {
			total += l.Price * float64(l.Quantity)
		}

		order = entity.Order{
			UserID:      userID,
			Status:      entity.OrderStatusPending,
			TotalAmount: total,
			CreatedAt:   time.Now(),
		}
		if _, err := tx.CreateOrder(ctx, &order); err != nil {
			return err
		}

		for _, l := range lines {
			item := entity.OrderItem{
				OrderID:   order.ID,
				ProductID: l.ProductID,
				Name:      l.Name,
				Quantity:  l.Quantity,
				Price:     l.Price, // price snapshot, not a live reference
			}
			if err := tx.CreateOrderItem(ctx, &item); err != nil {
				return err
			}
			items = append(items, item)

			p, err := tx.ProductForUpdate(ctx, l.ProductID)
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: product %d", ErrProductNotFound, l.ProductID)
			}
			if err != nil {
				return err
			}

			newQty := p.Quantity - l.Quantity
			if newQty < 0 {
				return fmt.Errorf("%w: product %d has %d in stock, %d requested",
					ErrInsufficientStock, p.ID, p.Quantity, l.Quantity)
			}
			if err := tx.SetProductQuantity(ctx, p.ID, newQty); err != nil {
				return err
			}
			if newQty <= p.MinQuantity {
				lowStock = append(lowStock, entity.LowStockDetected{
					ProductID:   p.ID,
					Name:        p.Name,
					Quantity:    newQty,
					MinQuantity: p.MinQuantity,
				})
			}
		}

		return tx.ClearCart(ctx, userID)
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart),
			errors.Is(err, ErrInsufficientStock),
			errors.Is(err, ErrProductNotFound):
			metrics.OrderFailures.WithLabelValues(orderFailureReason(err)).Inc()
			return 0, err
		default:
			// Infrastructure failure: full cause is for operators only.
			s.logger.Error("order placement failed",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			metrics.OrderFailures.WithLabelValues("internal").Inc()
			return 0, ErrOrderFailed
		}
	}

	metrics.OrdersPlaced.Inc()
	s.logger.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", userID),
		zap.Float64("total_amount", order.TotalAmount),
		zap.Int("items", len(items)),
	)

	s.publishPlaced(ctx, order, items)
	s.publishLowStock(ctx, lowStock)

	return order.ID, nil
}

// ListMyOrders returns the user's orders, newest first, each with its line
// items carrying the prices captured at placement time.
func (s *OrderService) ListMyOrders(ctx context.Context, userID int64) ([]entity.Order, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list orders", zap.Int64("user_id", userID), zap.Error(err))
		return nil, ErrOrderFailed
	}
	return orders, nil
}

func (s *OrderService) publishPlaced(ctx context.Context, order entity.Order, items []entity.OrderItem) {
	if s.publisher == nil {
		return
	}
	event := entity.OrderPlaced{
		OrderID:     order.ID,
		UserID:      order.UserID,
		Items:       items,
		TotalAmount: order.TotalAmount,
		PlacedAt:    order.CreatedAt,
	}
	key := strconv.FormatInt(order.ID, 10)
	if err := s.publisher.PublishEvent(ctx, messaging.TopicOrdersPlaced, key, event); err != nil {
		s.logger.Error("failed to publish OrderPlaced", zap.Int64("order_id", order.ID), zap.Error(err))
	}
}

func (s *OrderService) publishLowStock(ctx context.Context, events []entity.LowStockDetected) {
	if s.publisher == nil {
		return
	}
	for _, e := range events {
		key := strconv.FormatInt(e.ProductID, 10)
		if err := s.publisher.PublishEvent(ctx, messaging.TopicStockLow, key, e); err != nil {
			s.logger.Error("failed to publish LowStockDetected", zap.Int64("product_id", e.ProductID), zap.Error(err))
		}
	}
}

func orderFailureReason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrProductNotFound):
		return "product_not_found"
	default:
		return "invalid_input"
	}
}
