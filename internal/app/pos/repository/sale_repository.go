package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"papeleria/internal/app/pos/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository создает новый репозиторий продаж
func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

// ProcessSale выполняет чекаут как одну all-or-nothing транзакцию:
// каждый товар берётся с блокировкой SELECT ... FOR UPDATE, чтобы два
// одновременных чекаута не прошли проверку остатка по одному товару.
// Товары блокируются в стабильном порядке ID для исключения deadlock.
// При нехватке остатка транзакция откатывается целиком, ошибка называет товар
func (r *saleRepository) ProcessSale(ctx context.Context, cart map[uuid.UUID]int) (*entity.Sale, []entity.Product, error) {
	sale := &entity.Sale{
		ID:       uuid.New(),
		SaleDate: time.Now(),
	}

	var depleted []entity.Product

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]uuid.UUID, 0, len(cart))
		for id := range cart {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		var total float64
		for _, id := range ids {
			quantity := cart[id]

			var product entity.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrProductNotFound, id)
				}
				return err
			}

			if product.Stock < quantity {
				return fmt.Errorf("%w: %q (requested %d, available %d)",
					ErrInsufficientStock, product.Name, quantity, product.Stock)
			}

			newStock := product.Stock - quantity
			if err := tx.Model(&entity.Product{}).
				Where("id = ?", product.ID).
				Update("stock", newStock).Error; err != nil {
				return err
			}

			item := entity.SaleItem{
				ID:        uuid.New(),
				SaleID:    sale.ID,
				ProductID: product.ID,
				Quantity:  quantity,
				UnitPrice: product.SalePrice, // снимок цены на момент продажи
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			sale.Items = append(sale.Items, item)
			total += float64(quantity) * product.SalePrice

			if newStock == 0 {
				product.Stock = 0
				depleted = append(depleted, product)
			}
		}

		// Итог записывается после успешного создания всех позиций
		sale.Total = total
		return tx.Model(&entity.Sale{}).
			Where("id = ?", sale.ID).
			Update("total", total).Error
	})

	if err != nil {
		return nil, nil, err
	}

	return sale, depleted, nil
}

// DeleteWithStockRestore отменяет продажу: возвращает количество каждой
// позиции на склад и удаляет продажу вместе с позициями. Атомарно
func (r *saleRepository) DeleteWithStockRestore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sale entity.Sale
		if err := tx.Preload("Items").First(&sale, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return err
		}

		for _, item := range sale.Items {
			var product entity.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}

			if err := tx.Model(&entity.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", product.Stock+item.Quantity).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("sale_id = ?", id).Delete(&entity.SaleItem{}).Error; err != nil {
			return err
		}

		return tx.Delete(&entity.Sale{}, "id = ?", id).Error
	})
}
