package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"papeleria/internal/app/pos/entity"
	"papeleria/internal/app/pos/repository"
	"papeleria/internal/app/pos/util"
	"papeleria/pkg/logger"

	"github.com/google/uuid"
)

// CatalogService обрабатывает бизнес-логику каталога товаров и категорий
// Координирует работу репозиториев и Redis кеша списка категорий
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	cache        util.CategoryCache
	mediaURL     string // Публичный префикс для изображений товаров
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	cache util.CategoryCache,
	mediaURL string,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		cache:        cache,
		mediaURL:     mediaURL,
	}
}

// === CATEGORIES ===

// CreateCategory создает новую категорию и инвалидирует кеш
func (s *CatalogService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	category := &entity.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidateCategoryCache(ctx)

	return category, nil
}

// GetCategory получает категорию по ID
func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// GetAllCategories получает все категории с кешированием в Redis
// Сначала проверяет кеш, при промахе загружает из БД и кеширует на 1 час
func (s *CatalogService) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.cache.GetCategories(ctx)
	if err == nil && len(categories) > 0 {
		return categories, nil
	}

	categories, err = s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	if err := s.cache.SetCategories(ctx, categories, time.Hour); err != nil {
		// Данные получены из БД, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("failed to cache categories")
	}

	return categories, nil
}

// UpdateCategory обновляет категорию и инвалидирует кеш
func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	category.Name = req.Name
	category.Description = req.Description

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidateCategoryCache(ctx)

	return category, nil
}

// DeleteCategory удаляет категорию и инвалидирует кеш
// Товары категории не удаляются - их ссылка на категорию обнуляется
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidateCategoryCache(ctx)

	return nil
}

// === PRODUCTS ===

// CreateProduct создает новый товар
// Проверяет существование категории, если она указана
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to verify category: %w", err)
		}
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	product := &entity.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Barcode:     req.Barcode,
		SalePrice:   req.SalePrice,
		CostPrice:   req.CostPrice,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		CreatedAt:   time.Now(),
		Active:      active,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// GetProducts получает товары с фильтрацией
func (s *CatalogService) GetProducts(ctx context.Context, filter repository.ProductFilter) ([]entity.Product, error) {
	products, err := s.productRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return products, nil
}

// GetProductDetail возвращает сериализуемое представление одного товара:
// цены строками, имя категории (пустое при отсутствии), URL изображения
// (пустой при отсутствии)
func (s *CatalogService) GetProductDetail(ctx context.Context, id uuid.UUID) (*entity.ProductDetailResponse, error) {
	product, err := s.productRepo.GetWithCategory(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	detail := &entity.ProductDetailResponse{
		Name:        product.Name,
		Description: product.Description,
		SalePrice:   fmt.Sprintf("%.2f", product.SalePrice),
		Stock:       product.Stock,
		Active:      product.Active,
	}

	if product.Barcode != nil {
		detail.Barcode = *product.Barcode
	}
	if product.CostPrice != nil {
		detail.CostPrice = fmt.Sprintf("%.2f", *product.CostPrice)
	}
	if product.Category != nil {
		detail.Category = product.Category.Name
	}
	if product.ImagePath != "" {
		detail.Image = s.mediaURL + "/" + product.ImagePath
	}

	return detail, nil
}

// UpdateProduct обновляет товар (частичное обновление)
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Barcode != nil {
		product.Barcode = req.Barcode
	}
	if req.SalePrice > 0 {
		product.SalePrice = req.SalePrice
	}
	if req.CostPrice != nil {
		product.CostPrice = req.CostPrice
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to verify category: %w", err)
		}
		product.CategoryID = req.CategoryID
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// DeleteProduct удаляет товар
// Удаление отклоняется пока на товар ссылаются позиции продаж
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		if errors.Is(err, repository.ErrProductReferenced) {
			return ErrProductReferenced
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// AttachImage привязывает к товару сохранённый файл изображения
func (s *CatalogService) AttachImage(ctx context.Context, id uuid.UUID, filename string) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	product.ImagePath = filename

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// invalidateCategoryCache сбрасывает кеш категорий после мутации
// Запись уже сохранена в БД, проблемы с кешем не критичны
func (s *CatalogService) invalidateCategoryCache(ctx context.Context) {
	if err := s.cache.DeleteCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate categories cache")
	}
}
