package repository

import (
	"context"
	"errors"
	"time"

	"papeleria/internal/app/pos/entity"

	"github.com/google/uuid"
)

var (
	// Стандартные ошибки репозиториев для обработки в service layer
	ErrCategoryNotFound  = errors.New("category not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrProductReferenced = errors.New("product is referenced by sale items")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductFilter - параметры фильтрации списка товаров
// Query ищется по подстроке (без учёта регистра) в имени товара,
// описании и имени категории
type ProductFilter struct {
	Query      string
	CategoryID *uuid.UUID
	ActiveOnly bool
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetOrCreateByName(ctx context.Context, name string) (*entity.Category, error)
	GetAll(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetWithCategory(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetAll(ctx context.Context, filter ProductFilter) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	BulkUpsert(ctx context.Context, rows []entity.ImportRow, categoryID uuid.UUID) error
}

type SaleRepository interface {
	// ProcessSale выполняет чекаут одной транзакцией: блокирует товары,
	// проверяет остатки, списывает stock, создаёт Sale и позиции.
	// Возвращает товары, чей stock стал равен нулю
	ProcessSale(ctx context.Context, cart map[uuid.UUID]int) (*entity.Sale, []entity.Product, error)
	// DeleteWithStockRestore возвращает количества позиций на склад
	// и удаляет продажу вместе с позициями. Атомарно
	DeleteWithStockRestore(ctx context.Context, id uuid.UUID) error
}

type ReportRepository interface {
	SalesTotalForDay(ctx context.Context, day time.Time) (float64, error)
	LowestStock(ctx context.Context, limit int) ([]entity.Product, error)
	TopSellers(ctx context.Context, since time.Time, limit int) ([]entity.TopSeller, error)
	RangeSummary(ctx context.Context, start, end time.Time) (*entity.RangeSummary, error)
}
