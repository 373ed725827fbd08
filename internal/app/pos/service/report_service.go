package service

import (
	"context"
	"fmt"
	"time"

	"papeleria/internal/app/pos/entity"
	"papeleria/internal/app/pos/repository"
)

const (
	dateLayout = "2006-01-02"

	lowStockLimit    = 5
	topSellersLimit  = 5
	topSellersDays   = 30
	defaultRangeDays = 30
)

// ReportService строит агрегаты по продажам и остаткам
type ReportService struct {
	reportRepo repository.ReportRepository
	now        func() time.Time // подменяется в тестах
}

// NewReportService создает новый сервис отчётов
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		now:        time.Now,
	}
}

// Dashboard возвращает сводку для главной страницы:
// сумма продаж за сегодня, пять товаров с наименьшим остатком по возрастанию,
// пять лучших товаров по проданному количеству за последние 30 дней по убыванию
func (s *ReportService) Dashboard(ctx context.Context) (*entity.DashboardResponse, error) {
	today := s.now()

	total, err := s.reportRepo.SalesTotalForDay(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's sales total: %w", err)
	}

	lowStock, err := s.reportRepo.LowestStock(ctx, lowStockLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get low stock products: %w", err)
	}

	topSellers, err := s.reportRepo.TopSellers(ctx, today.AddDate(0, 0, -topSellersDays), topSellersLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top sellers: %w", err)
	}

	return &entity.DashboardResponse{
		TotalSalesToday: total,
		LowStock:        lowStock,
		TopSellers:      topSellers,
	}, nil
}

// RangeReport возвращает агрегаты продаж за период [start, end] включительно
// Пустые границы заменяются на [сегодня-30d, сегодня]
func (s *ReportService) RangeReport(ctx context.Context, startStr, endStr string) (*entity.RangeReportResponse, error) {
	today := s.now()

	start := today.AddDate(0, 0, -defaultRangeDays)
	end := today

	var err error
	if startStr != "" {
		start, err = time.Parse(dateLayout, startStr)
		if err != nil {
			return nil, fmt.Errorf("%w: start %q", ErrInvalidDateRange, startStr)
		}
	}
	if endStr != "" {
		end, err = time.Parse(dateLayout, endStr)
		if err != nil {
			return nil, fmt.Errorf("%w: end %q", ErrInvalidDateRange, endStr)
		}
	}

	if end.Before(start) {
		return nil, fmt.Errorf("%w: end before start", ErrInvalidDateRange)
	}

	summary, err := s.reportRepo.RangeSummary(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get range summary: %w", err)
	}

	return &entity.RangeReportResponse{
		Start:            start.Format(dateLayout),
		End:              end.Format(dateLayout),
		Total:            summary.Total,
		TransactionCount: summary.SaleCount,
		UnitsSold:        summary.UnitsSold,
	}, nil
}
