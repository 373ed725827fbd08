package handler

import (
	"errors"
	"net/http"

	"papeleria/internal/app/pos/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler обрабатывает HTTP запросы дашборда и отчётов
type ReportHandler struct {
	reportService service.ReportServiceInterface
}

// NewReportHandler создает новый обработчик отчётов
func NewReportHandler(reportService service.ReportServiceInterface) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GetDashboard обрабатывает GET /dashboard
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetSalesReport обрабатывает GET /reports/sales?start=&end=
// Даты в формате YYYY-MM-DD, по умолчанию последние 30 дней
func (h *ReportHandler) GetSalesReport(c *gin.Context) {
	report, err := h.reportService.RangeReport(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
