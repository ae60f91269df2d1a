package handler

import (
	"context"
	"errors"
	"net/http"

	"bobatcal/internal/app/bobatcal/entity"
	"bobatcal/internal/app/bobatcal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type RatingServiceInterface interface {
	SubmitRating(ctx context.Context, userID, drinkID uuid.UUID, req *entity.SubmitRatingRequest) (*entity.Rating, error)
	GetDrinkRatings(ctx context.Context, drinkID uuid.UUID) (*entity.DrinkRatingsResponse, error)
}

type RatingHandler struct {
	ratingService RatingServiceInterface
	validator     *validator.Validate
}

func NewRatingHandler(ratingService RatingServiceInterface) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		validator:     validator.New(),
	}
}

// GetRatings возвращает оценки напитка, новые первыми, вместе с агрегатами
func (h *RatingHandler) GetRatings(c *gin.Context) {
	drinkID, err := uuid.Parse(c.Param("drink_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid drink ID"})
		return
	}

	response, err := h.ratingService.GetDrinkRatings(c.Request.Context(), drinkID)
	if err != nil {
		if errors.Is(err, service.ErrDrinkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Drink not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get ratings"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// SubmitRating принимает оценку напитка от авторизованного пользователя
// Повторная отправка той же парой (user, drink) перезаписывает прежнюю оценку,
// поэтому и создание и перезапись отвечают 200
func (h *RatingHandler) SubmitRating(c *gin.Context) {
	userIDValue, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userIDStr, ok := userIDValue.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID"})
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID"})
		return
	}

	drinkID, err := uuid.Parse(c.Param("drink_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid drink ID"})
		return
	}

	var req entity.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	rating, err := h.ratingService.SubmitRating(c.Request.Context(), userID, drinkID, &req)
	if err != nil {
		if errors.Is(err, service.ErrDrinkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Drink not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit rating"})
		return
	}

	c.JSON(http.StatusOK, rating)
}
