package handler

import (
	"net/http"

	"papeleria/pkg/logger"
	"papeleria/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig - зависимости маршрутизатора
type RouterConfig struct {
	AuthHandler    *AuthHandler
	CatalogHandler *CatalogHandler
	SaleHandler    *SaleHandler
	ReportHandler  *ReportHandler
	ImportHandler  *ImportHandler
	AuthMiddleware *AuthMiddleware
	MediaDir       string
	MediaURL       string
}

// SetupRoutes настраивает все маршруты Papeleria POS с использованием Gin
// Все маршруты кроме /health, /metrics, /login и /media защищены JWT middleware
func SetupRoutes(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("papeleria"))
	router.Use(cors.Default())

	// Публичные эндпоинты
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "papeleria",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/login", cfg.AuthHandler.Login)
	router.Static(cfg.MediaURL, cfg.MediaDir)

	auth := cfg.AuthMiddleware.Authenticate()

	// Дашборд
	router.GET("/dashboard", auth, cfg.ReportHandler.GetDashboard)

	// Каталог товаров
	products := router.Group("/products")
	products.Use(auth)
	{
		products.GET("", cfg.CatalogHandler.GetProducts)
		products.POST("", cfg.CatalogHandler.CreateProduct)
		products.GET("/:id", cfg.CatalogHandler.GetProductDetail)
		products.PUT("/:id", cfg.CatalogHandler.UpdateProduct)
		products.DELETE("/:id", cfg.CatalogHandler.DeleteProduct)
		products.POST("/:id/image", cfg.CatalogHandler.UploadProductImage)
	}

	// Категории
	categories := router.Group("/categories")
	categories.Use(auth)
	{
		categories.GET("", cfg.CatalogHandler.GetAllCategories)
		categories.POST("", cfg.CatalogHandler.CreateCategory)
		categories.PUT("/:id", cfg.CatalogHandler.UpdateCategory)
		categories.DELETE("/:id", cfg.CatalogHandler.DeleteCategory)
	}

	// Касса
	router.GET("/sale", auth, cfg.SaleHandler.GetCheckout)
	router.POST("/sale", auth, cfg.SaleHandler.PostCheckout)
	router.DELETE("/sales/:id", auth, cfg.SaleHandler.DeleteSale)

	// CSV импорт
	router.POST("/upload-csv", auth, cfg.ImportHandler.UploadCSV)

	// Отчёты
	router.GET("/reports/sales", auth, cfg.ReportHandler.GetSalesReport)

	return router
}
