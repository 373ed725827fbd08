package service

import (
	"context"
	"io"

	"papeleria/internal/app/pos/entity"
	"papeleria/internal/app/pos/repository"

	"github.com/google/uuid"
)

type CatalogServiceInterface interface {
	CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetAllCategories(ctx context.Context) ([]entity.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	GetProducts(ctx context.Context, filter repository.ProductFilter) ([]entity.Product, error)
	GetProductDetail(ctx context.Context, id uuid.UUID) (*entity.ProductDetailResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	AttachImage(ctx context.Context, id uuid.UUID, filename string) (*entity.Product, error)
}

type SaleServiceInterface interface {
	Checkout(ctx context.Context, req *entity.CheckoutRequest) (*entity.Sale, error)
	ReverseSale(ctx context.Context, id uuid.UUID) error
	GetActiveProducts(ctx context.Context) ([]entity.Product, error)
}

type ReportServiceInterface interface {
	Dashboard(ctx context.Context) (*entity.DashboardResponse, error)
	RangeReport(ctx context.Context, startStr, endStr string) (*entity.RangeReportResponse, error)
}

type ImportServiceInterface interface {
	ImportCSV(ctx context.Context, r io.Reader) (int, error)
}
