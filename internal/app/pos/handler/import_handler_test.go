package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"papeleria/internal/app/pos/entity"
	"papeleria/internal/app/pos/repository/mocks"
	"papeleria/internal/app/pos/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupImportHandler() (*ImportHandler, *mocks.MockProductRepository, *mocks.MockCategoryRepository) {
	productRepo := new(mocks.MockProductRepository)
	categoryRepo := new(mocks.MockCategoryRepository)

	importService := service.NewImportService(productRepo, categoryRepo)
	handler := NewImportHandler(importService)

	return handler, productRepo, categoryRepo
}

func csvUploadRequest(t *testing.T, csvData string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "products.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csvData))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload-csv", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// ==================== UploadCSV Tests ====================

func TestImportHandler_UploadCSV_Success(t *testing.T) {
	// Arrange
	handler, productRepo, categoryRepo := setupImportHandler()

	category := &entity.Category{ID: uuid.New(), Name: service.DefaultImportCategory}
	categoryRepo.On("GetOrCreateByName", mock.Anything, service.DefaultImportCategory).
		Return(category, nil)
	productRepo.On("BulkUpsert", mock.Anything, mock.Anything, category.ID).Return(nil)

	csvData := "Product,Quantity,Cost Unit Price,Sale Unit Price\n" +
		"Pen,50,$1.00,$1.50\n"

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = csvUploadRequest(t, csvData)

	// Act
	handler.UploadCSV(c)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var response entity.ImportResultResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, 1, response.RowsImported)
	assert.Contains(t, response.Message, "Imported 1 products")
}

func TestImportHandler_UploadCSV_MissingColumn(t *testing.T) {
	// Arrange
	handler, _, _ := setupImportHandler()

	csvData := "Product,Cost Unit Price,Sale Unit Price\n" +
		"Pen,$1.00,$1.50\n"

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = csvUploadRequest(t, csvData)

	// Act
	handler.UploadCSV(c)

	// Assert - ошибка называет отсутствующую колонку
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Quantity")
}

func TestImportHandler_UploadCSV_MalformedRow(t *testing.T) {
	// Arrange
	handler, _, _ := setupImportHandler()

	csvData := "Product,Quantity,Cost Unit Price,Sale Unit Price\n" +
		"Pen,50,not-a-price,$1.50\n"

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = csvUploadRequest(t, csvData)

	// Act
	handler.UploadCSV(c)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "line 2")
}

func TestImportHandler_UploadCSV_NoFile(t *testing.T) {
	// Arrange
	handler, _, _ := setupImportHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/upload-csv", nil)

	// Act
	handler.UploadCSV(c)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CSV file required")
}
