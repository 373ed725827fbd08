package handler

import (
	"net/http"
	"time"

	"papeleria/internal/app/pos/config"
	"papeleria/internal/app/pos/entity"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 12 * time.Hour

// AuthHandler обрабатывает вход администратора
// Учётные данные задаются конфигурацией, пароль хранится как bcrypt hash
type AuthHandler struct {
	admin      config.AdminConfig
	middleware *AuthMiddleware
	validator  *validator.Validate
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(admin config.AdminConfig, middleware *AuthMiddleware) *AuthHandler {
	return &AuthHandler{
		admin:      admin,
		middleware: middleware,
		validator:  validator.New(),
	}
}

// Login обрабатывает POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if req.Username != h.admin.Username ||
		bcrypt.CompareHashAndPassword([]byte(h.admin.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.middleware.GenerateToken(req.Username, tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, entity.LoginResponse{Token: token})
}
