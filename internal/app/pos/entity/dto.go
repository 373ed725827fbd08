package entity

import "github.com/google/uuid"

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type UpdateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type CreateProductRequest struct {
	Name        string     `json:"name" validate:"required,min=2,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	Barcode     *string    `json:"barcode" validate:"omitempty,max=50"`
	SalePrice   float64    `json:"sale_price" validate:"required,gt=0"`
	CostPrice   *float64   `json:"cost_price" validate:"omitempty,gte=0"`
	Stock       int        `json:"stock" validate:"gte=0"`
	CategoryID  *uuid.UUID `json:"category_id" validate:"omitempty"`
	Active      *bool      `json:"active"`
}

type UpdateProductRequest struct {
	Name        string     `json:"name" validate:"omitempty,min=2,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	Barcode     *string    `json:"barcode" validate:"omitempty,max=50"`
	SalePrice   float64    `json:"sale_price" validate:"omitempty,gt=0"`
	CostPrice   *float64   `json:"cost_price" validate:"omitempty,gte=0"`
	Stock       *int       `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *uuid.UUID `json:"category_id" validate:"omitempty"`
	Active      *bool      `json:"active"`
}

// CartEntry - запрошенное количество одного товара в корзине
// Ключ "cantidad" сохранён для совместимости с клиентом кассы
type CartEntry struct {
	Cantidad int `json:"cantidad" validate:"required,gt=0"`
}

// CheckoutRequest - корзина чекаута: product_id -> запрошенное количество
type CheckoutRequest struct {
	Cart map[string]CartEntry `json:"cart" validate:"required"`
}

// CheckoutResponse - результат чекаута или отмены продажи
type CheckoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ProductDetailResponse - сериализуемое представление одного товара
// Цены форматируются строками, category и image пустые при отсутствии
type ProductDetailResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Barcode     string `json:"barcode"`
	SalePrice   string `json:"sale_price"`
	CostPrice   string `json:"cost_price"`
	Stock       int    `json:"stock"`
	Category    string `json:"category"`
	Active      bool   `json:"active"`
	Image       string `json:"image"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type DashboardResponse struct {
	TotalSalesToday float64     `json:"total_sales_today"`
	LowStock        []Product   `json:"low_stock"`
	TopSellers      []TopSeller `json:"top_sellers"`
}

type RangeReportResponse struct {
	Start            string  `json:"start"`
	End              string  `json:"end"`
	Total            float64 `json:"total"`
	TransactionCount int64   `json:"transaction_count"`
	UnitsSold        int64   `json:"units_sold"`
}

type ImportResultResponse struct {
	RowsImported int    `json:"rows_imported"`
	Message      string `json:"message"`
}

// ImportRow - одна разобранная строка CSV импорта
// Цены уже приведены из валютного формата ("$1,234.56") к числу
type ImportRow struct {
	Name      string
	Quantity  int
	CostPrice float64
	SalePrice float64
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

type CategoryListResponse struct {
	Categories []Category `json:"categories"`
	Total      int        `json:"total"`
}
