package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/YashSurve2006/Inventory-Management-Website/internal/entity"
	"github.com/YashSurve2006/Inventory-Management-Website/internal/repository"
)

// ReportService computes catalog-wide stock figures for dashboards. Low
// stock means quantity at or below the product's reorder threshold.
type ReportService struct {
	reports repository.ReportRepository
	logger  *zap.Logger
}

func NewReportService(reports repository.ReportRepository, logger *zap.Logger) *ReportService {
	return &ReportService{reports: reports, logger: logger}
}

func (s *ReportService) Summary(ctx context.Context) (entity.ReportSummary, error) {
	summary, err := s.reports.Summary(ctx)
	if err != nil {
		s.logger.Error("failed to build report summary", zap.Error(err))
		return entity.ReportSummary{}, fmt.Errorf("failed to build report summary: %w", err)
	}
	return summary, nil
}
