package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category представляет категорию товаров (например "Cuadernos", "Lápices")
type Category struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName указывает имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// Product представляет товар в инвентаре
// Stock не должен уходить в минус - это гарантирует транзакция продажи,
// а не constraint в БД
type Product struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string     `json:"name" gorm:"type:varchar(200);not null"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	Barcode     *string    `json:"barcode,omitempty" gorm:"type:varchar(50);uniqueIndex"`
	SalePrice   float64    `json:"sale_price" gorm:"type:decimal(10,2);not null"`
	CostPrice   *float64   `json:"cost_price,omitempty" gorm:"type:decimal(10,2)"`
	Stock       int        `json:"stock" gorm:"not null;default:0"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty" gorm:"type:uuid"`
	Category    *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	Active      bool       `json:"active" gorm:"not null;default:true"`
	ImagePath   string     `json:"image_path,omitempty" gorm:"type:varchar(255)"`
}

// TableName указывает имя таблицы для GORM
func (Product) TableName() string {
	return "products"
}

// Sale представляет завершённую транзакцию продажи
// Total вычисляется как сумма quantity * unit_price по всем позициям
type Sale struct {
	ID       uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	SaleDate time.Time  `json:"sale_date" gorm:"autoCreateTime"`
	Total    float64    `json:"total" gorm:"type:decimal(10,2);not null"`
	Items    []SaleItem `json:"items,omitempty" gorm:"foreignKey:SaleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName указывает имя таблицы для GORM
func (Sale) TableName() string {
	return "sales"
}

// SaleItem представляет позицию внутри продажи
// UnitPrice - снимок цены на момент продажи, не меняется при смене цены товара
// Товар нельзя удалить, пока на него ссылаются позиции продаж
type SaleItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SaleID    uuid.UUID `json:"sale_id" gorm:"type:uuid;not null"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Quantity  int       `json:"quantity" gorm:"not null;check:quantity > 0"`
	UnitPrice float64   `json:"unit_price" gorm:"type:decimal(10,2);not null"`
}

// TableName указывает имя таблицы для GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// StockEvent представляет событие об остатках для Kafka
type StockEvent struct {
	EventType   string    `json:"event_type"` // STOCK_DEPLETED
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Timestamp   time.Time `json:"timestamp"`
}

// TopSeller представляет товар в рейтинге продаж за период
type TopSeller struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
}

// RangeSummary содержит агрегаты продаж за период [Start, End]
type RangeSummary struct {
	Total     float64 `json:"total"`
	SaleCount int64   `json:"transaction_count"`
	UnitsSold int64   `json:"units_sold"`
}
