package handler

import (
	"errors"
	"fmt"
	"net/http"

	"papeleria/internal/app/pos/entity"
	"papeleria/internal/app/pos/service"

	"github.com/gin-gonic/gin"
)

// ImportHandler обрабатывает загрузку CSV с товарами
type ImportHandler struct {
	importService service.ImportServiceInterface
}

// NewImportHandler создает новый обработчик импорта
func NewImportHandler(importService service.ImportServiceInterface) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// UploadCSV обрабатывает POST /upload-csv (multipart поле "file")
// Весь батч применяется атомарно: ошибка любой строки откатывает импорт
func (h *ImportHandler) UploadCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	imported, err := h.importService.ImportCSV(c.Request.Context(), file)
	if err != nil {
		if errors.Is(err, service.ErrMissingColumn) || errors.Is(err, service.ErrInvalidRow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import CSV"})
		return
	}

	c.JSON(http.StatusOK, entity.ImportResultResponse{
		RowsImported: imported,
		Message:      fmt.Sprintf("Imported %d products successfully", imported),
	})
}
