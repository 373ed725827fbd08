package handler

import (
	"errors"
	"net/http"

	"papeleria/internal/app/pos/entity"
	"papeleria/internal/app/pos/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SaleHandler обрабатывает HTTP запросы чекаута и отмены продаж
type SaleHandler struct {
	saleService service.SaleServiceInterface
}

// NewSaleHandler создает новый обработчик продаж
func NewSaleHandler(saleService service.SaleServiceInterface) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
	}
}

// GetCheckout обрабатывает GET /sale
// Возвращает активные товары для страницы кассы
func (h *SaleHandler) GetCheckout(c *gin.Context) {
	products, err := h.saleService.GetActiveProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get products"})
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

// PostCheckout обрабатывает POST /sale
// Ошибки валидации (пустая корзина, нехватка остатка) возвращаются
// как 400 с success=false и текстом ошибки
func (h *SaleHandler) PostCheckout(c *gin.Context) {
	var req entity.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.CheckoutResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	sale, err := h.saleService.Checkout(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart),
			errors.Is(err, service.ErrInvalidQuantity),
			errors.Is(err, service.ErrInsufficientStock),
			errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusBadRequest, entity.CheckoutResponse{
				Success: false,
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, entity.CheckoutResponse{
				Success: false,
				Message: "Failed to process sale",
			})
		}
		return
	}

	c.JSON(http.StatusOK, entity.CheckoutResponse{
		Success: true,
		Message: "Sale " + sale.ID.String() + " processed successfully",
	})
}

// DeleteSale обрабатывает DELETE /sales/:id
// Возвращает количества позиций на склад и удаляет продажу
func (h *SaleHandler) DeleteSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale ID"})
		return
	}

	if err := h.saleService.ReverseSale(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sale"})
		return
	}

	c.JSON(http.StatusOK, entity.CheckoutResponse{
		Success: true,
		Message: "Sale deleted and stock restored",
	})
}
