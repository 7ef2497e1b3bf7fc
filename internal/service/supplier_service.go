package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/entity"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository"
)

// SupplierService handles supplier administration.
type SupplierService struct {
	suppliers repository.SupplierRepository
	logger    *zap.Logger
}

func NewSupplierService(suppliers repository.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{suppliers: suppliers, logger: logger}
}

func (s *SupplierService) Create(ctx context.Context, sup *entity.Supplier) (int64, error) {
	if sup.Name == "" {
		return 0, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	id, err := s.suppliers.Create(ctx, sup)
	if err != nil {
		s.logger.Error("failed to create supplier", zap.Error(err))
		return 0, fmt.Errorf("failed to create supplier: %w", err)
	}
	return id, nil
}

func (s *SupplierService) List(ctx context.Context) ([]entity.Supplier, error) {
	suppliers, err := s.suppliers.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list suppliers", zap.Error(err))
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return suppliers, nil
}
