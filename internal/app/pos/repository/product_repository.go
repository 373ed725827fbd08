package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"papeleria/internal/app/pos/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create создает новый товар
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Create(product)
	return result.Error
}

// GetByID получает товар по ID
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}

	return &product, nil
}

// GetWithCategory получает товар вместе с категорией
func (r *productRepository) GetWithCategory(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).Preload("Category").First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}

	return &product, nil
}

// GetAll получает товары с фильтрацией
// Подстрока ищется без учёта регистра в имени, описании и имени категории
func (r *productRepository) GetAll(ctx context.Context, filter ProductFilter) ([]entity.Product, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Preload("Category").
		Order("products.created_at DESC")

	if filter.Query != "" {
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		query = query.
			Joins("LEFT JOIN categories ON categories.id = products.category_id").
			Where(
				"LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(categories.name) LIKE ?",
				pattern, pattern, pattern,
			)
	}

	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}

	if filter.ActiveOnly {
		query = query.Where("products.active = ?", true)
	}

	var products []entity.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

// Update обновляет товар
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Model(product).Where("id = ?", product.ID).Updates(map[string]interface{}{
		"name":        product.Name,
		"description": product.Description,
		"barcode":     product.Barcode,
		"sale_price":  product.SalePrice,
		"cost_price":  product.CostPrice,
		"stock":       product.Stock,
		"category_id": product.CategoryID,
		"active":      product.Active,
		"image_path":  product.ImagePath,
	})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete удаляет товар
// Удаление отклоняется пока на товар ссылаются позиции продаж
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var referenced int64
		if err := tx.Model(&entity.SaleItem{}).
			Where("product_id = ?", id).
			Count(&referenced).Error; err != nil {
			return err
		}
		if referenced > 0 {
			return ErrProductReferenced
		}

		result := tx.Delete(&entity.Product{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}

		return nil
	})
}

// BulkUpsert применяет строки CSV импорта одной транзакцией
// Upsert по точному имени товара; ошибка любой строки откатывает весь батч
func (r *productRepository) BulkUpsert(ctx context.Context, rows []entity.ImportRow, categoryID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			cost := row.CostPrice

			var product entity.Product
			err := tx.First(&product, "name = ?", row.Name).Error

			switch {
			case err == nil:
				updates := map[string]interface{}{
					"stock":       row.Quantity,
					"cost_price":  cost,
					"sale_price":  row.SalePrice,
					"category_id": categoryID,
				}
				if err := tx.Model(&entity.Product{}).
					Where("id = ?", product.ID).
					Updates(updates).Error; err != nil {
					return err
				}

			case errors.Is(err, gorm.ErrRecordNotFound):
				product = entity.Product{
					ID:         uuid.New(),
					Name:       row.Name,
					SalePrice:  row.SalePrice,
					CostPrice:  &cost,
					Stock:      row.Quantity,
					CategoryID: &categoryID,
					CreatedAt:  time.Now(),
					Active:     true,
				}
				if err := tx.Create(&product).Error; err != nil {
					return err
				}

			default:
				return err
			}
		}

		return nil
	})
}
