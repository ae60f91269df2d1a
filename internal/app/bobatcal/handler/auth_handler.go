package handler

import (
	"context"
	"errors"
	"net/http"

	"bobatcal/internal/app/bobatcal/entity"
	"bobatcal/internal/app/bobatcal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AuthServiceInterface interface {
	SignIn(ctx context.Context, req *entity.SignInRequest) (*entity.SessionResponse, error)
}

type AuthHandler struct {
	authService AuthServiceInterface
	validator   *validator.Validate
}

func NewAuthHandler(authService AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
	}
}

// CreateSession обменивает Google access token на токен локальной сессии
// При первом входе пользователь создается автоматически с ролью user
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req entity.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	session, err := h.authService.SignIn(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOAuthToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid access token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, session)
}
