package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"papeleria/internal/app/pos/entity"
	"papeleria/internal/app/pos/repository"
	"papeleria/internal/app/pos/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testMediaURL = "/media"

// Хелперы для создания тестовых данных

func newTestCategory() *entity.Category {
	return &entity.Category{
		ID:        uuid.New(),
		Name:      "Cuadernos",
		CreatedAt: time.Now(),
	}
}

func newTestProduct(categoryID *uuid.UUID) *entity.Product {
	return &entity.Product{
		ID:         uuid.New(),
		Name:       "Cuaderno profesional",
		SalePrice:  45.50,
		Stock:      20,
		CategoryID: categoryID,
		CreatedAt:  time.Now(),
		Active:     true,
	}
}

func newCatalogServiceWithMocks() (*CatalogService, *mocks.MockCategoryRepository, *mocks.MockProductRepository, *mocks.MockCategoryCache) {
	categoryRepo := new(mocks.MockCategoryRepository)
	productRepo := new(mocks.MockProductRepository)
	cache := new(mocks.MockCategoryCache)

	service := NewCatalogService(categoryRepo, productRepo, cache, testMediaURL)

	return service, categoryRepo, productRepo, cache
}

// ==================== Category Tests ====================

func TestCatalogService_CreateCategory_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, categoryRepo, _, cache := newCatalogServiceWithMocks()

	categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).Return(nil)
	cache.On("DeleteCategories", ctx).Return(nil)

	req := &entity.CreateCategoryRequest{Name: "Cuadernos"}

	// Act
	category, err := service.CreateCategory(ctx, req)

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, category)
	assert.Equal(t, "Cuadernos", category.Name)
	assert.NotEqual(t, uuid.Nil, category.ID)

	categoryRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCatalogService_CreateCategory_RepoError(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, categoryRepo, _, _ := newCatalogServiceWithMocks()

	categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).Return(errors.New("db error"))

	req := &entity.CreateCategoryRequest{Name: "Cuadernos"}

	// Act
	category, err := service.CreateCategory(ctx, req)

	// Assert
	assert.Nil(t, category)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create category")
}

func TestCatalogService_CreateCategory_CacheErrorIgnored(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, categoryRepo, _, cache := newCatalogServiceWithMocks()

	categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).Return(nil)
	cache.On("DeleteCategories", ctx).Return(errors.New("redis error"))

	req := &entity.CreateCategoryRequest{Name: "Cuadernos"}

	// Act
	category, err := service.CreateCategory(ctx, req)

	// Assert - ошибка кеша не должна прерывать выполнение
	require.NoError(t, err)
	assert.NotNil(t, category)
}

func TestCatalogService_GetCategory_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, categoryRepo, _, _ := newCatalogServiceWithMocks()

	categoryID := uuid.New()
	categoryRepo.On("GetByID", ctx, categoryID).Return(nil, repository.ErrCategoryNotFound)

	// Act
	category, err := service.GetCategory(ctx, categoryID)

	// Assert
	assert.Nil(t, category)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCatalogService_GetAllCategories_CacheHit(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, categoryRepo, _, cache := newCatalogServiceWithMocks()

	cached := []entity.Category{
		{ID: uuid.New(), Name: "Cuadernos"},
		{ID: uuid.New(), Name: "Lápices"},
	}
	cache.On("GetCategories", ctx).Return(cached, nil)

	// Act
	categories, err := service.GetAllCategories(ctx)

	// Assert
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	categoryRepo.AssertNotCalled(t, "GetAll", mock.Anything)
}

func TestCatalogService_GetAllCategories_CacheMiss(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, categoryRepo, _, cache := newCatalogServiceWithMocks()

	fromDB := []entity.Category{{ID: uuid.New(), Name: "Cuadernos"}}

	cache.On("GetCategories", ctx).Return(nil, errors.New("cache miss"))
	categoryRepo.On("GetAll", ctx).Return(fromDB, nil)
	cache.On("SetCategories", ctx, fromDB, time.Hour).Return(nil)

	// Act
	categories, err := service.GetAllCategories(ctx)

	// Assert
	require.NoError(t, err)
	assert.Len(t, categories, 1)

	cache.AssertExpectations(t)
	categoryRepo.AssertExpectations(t)
}

func TestCatalogService_GetAllCategories_SetCacheErrorIgnored(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, categoryRepo, _, cache := newCatalogServiceWithMocks()

	fromDB := []entity.Category{{ID: uuid.New(), Name: "Cuadernos"}}

	cache.On("GetCategories", ctx).Return(nil, errors.New("cache miss"))
	categoryRepo.On("GetAll", ctx).Return(fromDB, nil)
	cache.On("SetCategories", ctx, fromDB, time.Hour).Return(errors.New("redis error"))

	// Act
	categories, err := service.GetAllCategories(ctx)

	// Assert - данные из БД получены, ошибка кеша не критична
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestCatalogService_UpdateCategory_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, categoryRepo, _, cache := newCatalogServiceWithMocks()

	existing := newTestCategory()
	categoryRepo.On("GetByID", ctx, existing.ID).Return(existing, nil)
	categoryRepo.On("Update", ctx, mock.AnythingOfType("*entity.Category")).Return(nil)
	cache.On("DeleteCategories", ctx).Return(nil)

	req := &entity.UpdateCategoryRequest{Name: "Papel", Description: "Hojas y papel"}

	// Act
	category, err := service.UpdateCategory(ctx, existing.ID, req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Papel", category.Name)
	assert.Equal(t, "Hojas y papel", category.Description)

	cache.AssertExpectations(t)
}

func TestCatalogService_DeleteCategory_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, categoryRepo, _, cache := newCatalogServiceWithMocks()

	categoryID := uuid.New()
	categoryRepo.On("Delete", ctx, categoryID).Return(nil)
	cache.On("DeleteCategories", ctx).Return(nil)

	// Act
	err := service.DeleteCategory(ctx, categoryID)

	// Assert
	require.NoError(t, err)
	categoryRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCatalogService_DeleteCategory_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, categoryRepo, _, _ := newCatalogServiceWithMocks()

	categoryID := uuid.New()
	categoryRepo.On("Delete", ctx, categoryID).Return(repository.ErrCategoryNotFound)

	// Act
	err := service.DeleteCategory(ctx, categoryID)

	// Assert
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

// ==================== Product Tests ====================

func TestCatalogService_CreateProduct_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, categoryRepo, productRepo, _ := newCatalogServiceWithMocks()

	category := newTestCategory()
	categoryRepo.On("GetByID", ctx, category.ID).Return(category, nil)
	productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	req := &entity.CreateProductRequest{
		Name:       "Cuaderno profesional",
		SalePrice:  45.50,
		Stock:      20,
		CategoryID: &category.ID,
	}

	// Act
	product, err := service.CreateProduct(ctx, req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Cuaderno profesional", product.Name)
	assert.Equal(t, 20, product.Stock)
	assert.True(t, product.Active) // активен по умолчанию
	assert.NotEqual(t, uuid.Nil, product.ID)
}

func TestCatalogService_CreateProduct_CategoryNotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, categoryRepo, productRepo, _ := newCatalogServiceWithMocks()

	categoryID := uuid.New()
	categoryRepo.On("GetByID", ctx, categoryID).Return(nil, repository.ErrCategoryNotFound)

	req := &entity.CreateProductRequest{
		Name:       "Cuaderno",
		SalePrice:  45.50,
		CategoryID: &categoryID,
	}

	// Act
	product, err := service.CreateProduct(ctx, req)

	// Assert
	assert.Nil(t, product)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogService_CreateProduct_WithoutCategory(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, categoryRepo, productRepo, _ := newCatalogServiceWithMocks()

	productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	req := &entity.CreateProductRequest{
		Name:      "Cinta adhesiva",
		SalePrice: 12.00,
	}

	// Act
	product, err := service.CreateProduct(ctx, req)

	// Assert
	require.NoError(t, err)
	assert.Nil(t, product.CategoryID)
	categoryRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCatalogService_GetProductDetail_Full(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, _, productRepo, _ := newCatalogServiceWithMocks()

	category := newTestCategory()
	barcode := "7501234567890"
	cost := 30.0
	product := newTestProduct(&category.ID)
	product.Barcode = &barcode
	product.CostPrice = &cost
	product.Category = category
	product.ImagePath = "abc.png"

	productRepo.On("GetWithCategory", ctx, product.ID).Return(product, nil)

	// Act
	detail, err := service.GetProductDetail(ctx, product.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "45.50", detail.SalePrice)
	assert.Equal(t, "30.00", detail.CostPrice)
	assert.Equal(t, "7501234567890", detail.Barcode)
	assert.Equal(t, category.Name, detail.Category)
	assert.Equal(t, "/media/abc.png", detail.Image)
}

func TestCatalogService_GetProductDetail_Fallbacks(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, _, productRepo, _ := newCatalogServiceWithMocks()

	product := newTestProduct(nil) // без категории, штрихкода, себестоимости и изображения
	productRepo.On("GetWithCategory", ctx, product.ID).Return(product, nil)

	// Act
	detail, err := service.GetProductDetail(ctx, product.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "", detail.Barcode)
	assert.Equal(t, "", detail.CostPrice)
	assert.Equal(t, "", detail.Category)
	assert.Equal(t, "", detail.Image)
}

func TestCatalogService_GetProductDetail_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, _, productRepo, _ := newCatalogServiceWithMocks()

	productID := uuid.New()
	productRepo.On("GetWithCategory", ctx, productID).Return(nil, repository.ErrProductNotFound)

	// Act
	detail, err := service.GetProductDetail(ctx, productID)

	// Assert
	assert.Nil(t, detail)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_UpdateProduct_Partial(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, _, productRepo, _ := newCatalogServiceWithMocks()

	product := newTestProduct(nil)
	productRepo.On("GetByID", ctx, product.ID).Return(product, nil)
	productRepo.On("Update", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	newStock := 5
	req := &entity.UpdateProductRequest{Stock: &newStock}

	// Act
	updated, err := service.UpdateProduct(ctx, product.ID, req)

	// Assert - меняется только stock, остальные поля сохраняются
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Stock)
	assert.Equal(t, "Cuaderno profesional", updated.Name)
	assert.Equal(t, 45.50, updated.SalePrice)
}

func TestCatalogService_DeleteProduct_Referenced(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, _, productRepo, _ := newCatalogServiceWithMocks()

	productID := uuid.New()
	productRepo.On("Delete", ctx, productID).Return(repository.ErrProductReferenced)

	// Act
	err := service.DeleteProduct(ctx, productID)

	// Assert
	assert.ErrorIs(t, err, ErrProductReferenced)
}

func TestCatalogService_DeleteProduct_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, _, productRepo, _ := newCatalogServiceWithMocks()

	productID := uuid.New()
	productRepo.On("Delete", ctx, productID).Return(repository.ErrProductNotFound)

	// Act
	err := service.DeleteProduct(ctx, productID)

	// Assert
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_AttachImage_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, _, productRepo, _ := newCatalogServiceWithMocks()

	product := newTestProduct(nil)
	productRepo.On("GetByID", ctx, product.ID).Return(product, nil)
	productRepo.On("Update", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	// Act
	updated, err := service.AttachImage(ctx, product.ID, "photo.jpg")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "photo.jpg", updated.ImagePath)
}
