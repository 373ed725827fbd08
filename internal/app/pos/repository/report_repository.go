package repository

import (
	"context"
	"time"

	"papeleria/internal/app/pos/entity"

	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository создает новый репозиторий отчётов
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

const dateLayout = "2006-01-02"

// SalesTotalForDay возвращает сумму продаж за календарный день
func (r *reportRepository) SalesTotalForDay(ctx context.Context, day time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&entity.Sale{}).
		Select("COALESCE(SUM(total), 0)").
		Where("DATE(sale_date) = ?", day.Format(dateLayout)).
		Scan(&total).Error

	if err != nil {
		return 0, err
	}

	return total, nil
}

// LowestStock возвращает товары с наименьшим остатком по возрастанию
func (r *reportRepository) LowestStock(ctx context.Context, limit int) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Order("stock ASC").
		Limit(limit).
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

// TopSellers возвращает лучшие товары по суммарному проданному количеству
// начиная с указанной даты, по убыванию
func (r *reportRepository) TopSellers(ctx context.Context, since time.Time, limit int) ([]entity.TopSeller, error) {
	var sellers []entity.TopSeller
	err := r.db.WithContext(ctx).
		Model(&entity.SaleItem{}).
		Select("products.id AS product_id, products.name AS product_name, SUM(sale_items.quantity) AS quantity").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Where("DATE(sales.sale_date) >= ?", since.Format(dateLayout)).
		Group("products.id, products.name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&sellers).Error

	if err != nil {
		return nil, err
	}

	return sellers, nil
}

// RangeSummary возвращает агрегаты продаж за период [start, end] включительно
func (r *reportRepository) RangeSummary(ctx context.Context, start, end time.Time) (*entity.RangeSummary, error) {
	summary := &entity.RangeSummary{}

	row := struct {
		Total float64
		Count int64
	}{}
	err := r.db.WithContext(ctx).
		Model(&entity.Sale{}).
		Select("COALESCE(SUM(total), 0) AS total, COUNT(*) AS count").
		Where("DATE(sale_date) BETWEEN ? AND ?", start.Format(dateLayout), end.Format(dateLayout)).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	summary.Total = row.Total
	summary.SaleCount = row.Count

	var units int64
	err = r.db.WithContext(ctx).
		Model(&entity.SaleItem{}).
		Select("COALESCE(SUM(sale_items.quantity), 0)").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("DATE(sales.sale_date) BETWEEN ? AND ?", start.Format(dateLayout), end.Format(dateLayout)).
		Scan(&units).Error
	if err != nil {
		return nil, err
	}
	summary.UnitsSold = units

	return summary, nil
}
