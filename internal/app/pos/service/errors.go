package service

import (
	"errors"

	"papeleria/internal/app/pos/repository"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrMissingColumn    = errors.New("missing required column")
	ErrInvalidRow       = errors.New("invalid import row")

	// Ошибки репозиториев пробрасываются как есть: их текст содержит
	// детали (какой товар, сколько запрошено), нужные пользователю
	ErrCategoryNotFound  = repository.ErrCategoryNotFound
	ErrProductNotFound   = repository.ErrProductNotFound
	ErrSaleNotFound      = repository.ErrSaleNotFound
	ErrProductReferenced = repository.ErrProductReferenced
	ErrInsufficientStock = repository.ErrInsufficientStock
)
