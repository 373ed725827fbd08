package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"papeleria/internal/app/pos/entity"
	"papeleria/internal/app/pos/repository"
	"papeleria/internal/app/pos/repository/mocks"
	"papeleria/internal/app/pos/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Хелперы для создания тестового окружения

func setupSaleHandler() (*SaleHandler, *mocks.MockSaleRepository, *mocks.MockProductRepository, *mocks.MockStockNotifier, *mocks.MockMessagePublisher) {
	saleRepo := new(mocks.MockSaleRepository)
	productRepo := new(mocks.MockProductRepository)
	notifier := new(mocks.MockStockNotifier)
	publisher := new(mocks.MockMessagePublisher)

	saleService := service.NewSaleService(saleRepo, productRepo, notifier, publisher)
	handler := NewSaleHandler(saleService)

	return handler, saleRepo, productRepo, notifier, publisher
}

func checkoutBody(t *testing.T, cart map[string]entity.CartEntry) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(entity.CheckoutRequest{Cart: cart})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

// ==================== GetCheckout Tests ====================

func TestSaleHandler_GetCheckout_Success(t *testing.T) {
	// Arrange
	handler, _, productRepo, _, _ := setupSaleHandler()

	products := []entity.Product{
		{ID: uuid.New(), Name: "Cuaderno", SalePrice: 45.50, Stock: 20, Active: true},
	}
	productRepo.On("GetAll", mock.Anything, repository.ProductFilter{ActiveOnly: true}).
		Return(products, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/sale", nil)

	// Act
	handler.GetCheckout(c)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var response entity.ProductListResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, 1, response.Total)
	assert.Equal(t, "Cuaderno", response.Products[0].Name)
}

// ==================== PostCheckout Tests ====================

func TestSaleHandler_PostCheckout_Success(t *testing.T) {
	// Arrange
	handler, saleRepo, _, _, _ := setupSaleHandler()

	saleID := uuid.New()
	productID := uuid.New()
	sale := &entity.Sale{ID: saleID, SaleDate: time.Now(), Total: 91.0}

	saleRepo.On("ProcessSale", mock.Anything, map[uuid.UUID]int{productID: 2}).
		Return(sale, nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/sale",
		checkoutBody(t, map[string]entity.CartEntry{productID.String(): {Cantidad: 2}}))
	c.Request.Header.Set("Content-Type", "application/json")

	// Act
	handler.PostCheckout(c)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var response entity.CheckoutResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.True(t, response.Success)
	assert.Contains(t, response.Message, saleID.String())
	assert.Contains(t, response.Message, "processed successfully")
}

func TestSaleHandler_PostCheckout_EmptyCart(t *testing.T) {
	// Arrange
	handler, _, _, _, _ := setupSaleHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/sale",
		checkoutBody(t, map[string]entity.CartEntry{}))
	c.Request.Header.Set("Content-Type", "application/json")

	// Act
	handler.PostCheckout(c)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response entity.CheckoutResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.False(t, response.Success)
	assert.Contains(t, response.Message, "cart is empty")
}

func TestSaleHandler_PostCheckout_InsufficientStock(t *testing.T) {
	// Arrange
	handler, saleRepo, _, _, _ := setupSaleHandler()

	productID := uuid.New()
	repoErr := fmt.Errorf("%w: %q (requested %d, available %d)",
		repository.ErrInsufficientStock, "Cuaderno", 5, 2)
	saleRepo.On("ProcessSale", mock.Anything, mock.Anything).
		Return(nil, nil, repoErr)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/sale",
		checkoutBody(t, map[string]entity.CartEntry{productID.String(): {Cantidad: 5}}))
	c.Request.Header.Set("Content-Type", "application/json")

	// Act
	handler.PostCheckout(c)

	// Assert - ответ называет товар и количества
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response entity.CheckoutResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.False(t, response.Success)
	assert.Contains(t, response.Message, "insufficient stock")
	assert.Contains(t, response.Message, "Cuaderno")
}

func TestSaleHandler_PostCheckout_InvalidJSON(t *testing.T) {
	// Arrange
	handler, _, _, _, _ := setupSaleHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/sale", bytes.NewBufferString("not json"))
	c.Request.Header.Set("Content-Type", "application/json")

	// Act
	handler.PostCheckout(c)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response entity.CheckoutResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.False(t, response.Success)
}

func TestSaleHandler_PostCheckout_InternalError(t *testing.T) {
	// Arrange
	handler, saleRepo, _, _, _ := setupSaleHandler()

	productID := uuid.New()
	saleRepo.On("ProcessSale", mock.Anything, mock.Anything).
		Return(nil, nil, fmt.Errorf("db error"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/sale",
		checkoutBody(t, map[string]entity.CartEntry{productID.String(): {Cantidad: 1}}))
	c.Request.Header.Set("Content-Type", "application/json")

	// Act
	handler.PostCheckout(c)

	// Assert - внутренняя ошибка не раскрывает деталей
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response entity.CheckoutResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.False(t, response.Success)
	assert.Equal(t, "Failed to process sale", response.Message)
}

// ==================== DeleteSale Tests ====================

func TestSaleHandler_DeleteSale_Success(t *testing.T) {
	// Arrange
	handler, saleRepo, _, _, _ := setupSaleHandler()

	saleID := uuid.New()
	saleRepo.On("DeleteWithStockRestore", mock.Anything, saleID).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/sales/"+saleID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: saleID.String()}}

	// Act
	handler.DeleteSale(c)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var response entity.CheckoutResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.True(t, response.Success)
	assert.Contains(t, response.Message, "stock restored")
}

func TestSaleHandler_DeleteSale_NotFound(t *testing.T) {
	// Arrange
	handler, saleRepo, _, _, _ := setupSaleHandler()

	saleID := uuid.New()
	saleRepo.On("DeleteWithStockRestore", mock.Anything, saleID).
		Return(repository.ErrSaleNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/sales/"+saleID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: saleID.String()}}

	// Act
	handler.DeleteSale(c)

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaleHandler_DeleteSale_InvalidID(t *testing.T) {
	// Arrange
	handler, _, _, _, _ := setupSaleHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/sales/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	// Act
	handler.DeleteSale(c)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
