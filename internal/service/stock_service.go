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

// StockService maintains the manual stock movement ledger. Every movement
// writes a transaction row, an inventory log row, and the product quantity
// in one unit of work; OUT movements hold a row lock on the product so two
// concurrent drains cannot jointly oversell.
type StockService struct {
	store     repository.Store
	ledger    repository.StockRepository
	publisher messaging.Publisher
	logger    *zap.Logger
}

func NewStockService(
	store repository.Store,
	ledger repository.StockRepository,
	publisher messaging.Publisher,
	logger *zap.Logger,
) *StockService {
	return &StockService{
		store:     store,
		ledger:    ledger,
		publisher: publisher,
		logger:    logger,
	}
}

// AddTransactionInput are the fields of a manual stock movement request.
type AddTransactionInput struct {
	ProductID  int64
	SupplierID *int64
	Quantity   int
	Type       entity.TransactionType
}

// AddTransaction records a stock movement and applies it to the product
// quantity. IN always increments; OUT is guarded so the quantity never goes
// negative, in which case nothing is persisted at all.
func (s *StockService) AddTransaction(ctx context.Context, in AddTransactionInput) (int64, error) {
	if in.ProductID <= 0 {
		return 0, fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return 0, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if !in.Type.Valid() {
		return 0, fmt.Errorf("%w: type must be IN or OUT", ErrInvalidInput)
	}

	var (
		txn      entity.StockTransaction
		newQty   int
		lowStock *entity.LowStockDetected
	)

	err := s.store.RunInTx(ctx, func(tx repository.Tx) error {
		txn = entity.StockTransaction{
			ProductID:  in.ProductID,
			SupplierID: in.SupplierID,
			Quantity:   in.Quantity,
			Type:       in.Type,
			Date:       time.Now(),
		}
		if _, err := tx.CreateStockTransaction(ctx, &txn); err != nil {
			return err
		}

		change, action := in.Quantity, "Stock In"
		if in.Type == entity.TransactionOut {
			change, action = -in.Quantity, "Stock Out"
		}
		log := entity.InventoryLog{
			ProductID:    in.ProductID,
			ChangeAmount: change,
			Action:       action,
			CreatedAt:    txn.Date,
		}
		if err := tx.AppendInventoryLog(ctx, &log); err != nil {
			return err
		}

		p, err := tx.ProductForUpdate(ctx, in.ProductID)
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: product %d", ErrProductNotFound, in.ProductID)
		}
		if err != nil {
			return err
		}

		if in.Type == entity.TransactionIn {
			// Inbound stock is accepted unconditionally.
			newQty = p.Quantity + in.Quantity
		} else {
			newQty = p.Quantity - in.Quantity
			if newQty < 0 {
				return fmt.Errorf("%w: product %d has %d in stock, %d requested",
					ErrInsufficientStock, p.ID, p.Quantity, in.Quantity)
			}
			if newQty <= p.MinQuantity {
				lowStock = &entity.LowStockDetected{
					ProductID:   p.ID,
					Name:        p.Name,
					Quantity:    newQty,
					MinQuantity: p.MinQuantity,
				}
			}
		}
		return tx.SetProductQuantity(ctx, p.ID, newQty)
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrInsufficientStock):
			metrics.StockMovements.WithLabelValues(string(in.Type), "insufficient_stock").Inc()
			return 0, err
		case errors.Is(err, ErrProductNotFound):
			metrics.StockMovements.WithLabelValues(string(in.Type), "product_not_found").Inc()
			return 0, err
		default:
			s.logger.Error("stock transaction failed",
				zap.Int64("product_id", in.ProductID),
				zap.String("type", string(in.Type)),
				zap.Error(err),
			)
			metrics.StockMovements.WithLabelValues(string(in.Type), "error").Inc()
			return 0, ErrTransactionFailed
		}
	}

	metrics.StockMovements.WithLabelValues(string(in.Type), "ok").Inc()
	s.logger.Info("stock transaction recorded",
		zap.Int64("transaction_id", txn.ID),
		zap.Int64("product_id", in.ProductID),
		zap.String("type", string(in.Type)),
		zap.Int("quantity", in.Quantity),
		zap.Int("new_quantity", newQty),
	)

	s.publishAdjusted(ctx, txn, newQty)
	if lowStock != nil {
		s.publishLow(ctx, *lowStock)
	}

	return txn.ID, nil
}

// ListTransactions returns the ledger, newest first, with product and
// supplier names joined in.
func (s *StockService) ListTransactions(ctx context.Context) ([]entity.StockTransaction, error) {
	txns, err := s.ledger.ListTransactions(ctx)
	if err != nil {
		s.logger.Error("failed to list transactions", zap.Error(err))
		return nil, ErrTransactionFailed
	}
	return txns, nil
}

func (s *StockService) publishAdjusted(ctx context.Context, txn entity.StockTransaction, newQty int) {
	if s.publisher == nil {
		return
	}
	event := entity.StockAdjusted{
		TransactionID: txn.ID,
		ProductID:     txn.ProductID,
		Type:          txn.Type,
		Quantity:      txn.Quantity,
		NewQuantity:   newQty,
		AdjustedAt:    txn.Date,
	}
	key := strconv.FormatInt(txn.ProductID, 10)
	if err := s.publisher.PublishEvent(ctx, messaging.TopicStockAdjusted, key, event); err != nil {
		s.logger.Error("failed to publish StockAdjusted", zap.Int64("transaction_id", txn.ID), zap.Error(err))
	}
}

func (s *StockService) publishLow(ctx context.Context, e entity.LowStockDetected) {
	if s.publisher == nil {
		return
	}
	key := strconv.FormatInt(e.ProductID, 10)
	if err := s.publisher.PublishEvent(ctx, messaging.TopicStockLow, key, e); err != nil {
		s.logger.Error("failed to publish LowStockDetected", zap.Int64("product_id", e.ProductID), zap.Error(err))
	}
}
