package handler

import (
	"errors"
	"net/http"

	"bobatcal/internal/app/bobatcal/entity"
	"bobatcal/internal/app/bobatcal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type DrinkHandler struct {
	catalogService CatalogServiceInterface
	validator      *validator.Validate
}

func NewDrinkHandler(catalogService CatalogServiceInterface) *DrinkHandler {
	return &DrinkHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// GetDrinks возвращает меню магазина с агрегатами оценок
// Для существующего магазина без напитков возвращается пустой список
func (h *DrinkHandler) GetDrinks(c *gin.Context) {
	shopID, err := uuid.Parse(c.Param("shop_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop ID"})
		return
	}

	drinks, err := h.catalogService.ListDrinks(c.Request.Context(), shopID)
	if err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get drinks"})
		return
	}

	response := entity.DrinkListResponse{
		Drinks: drinks,
		Total:  len(drinks),
	}

	c.JSON(http.StatusOK, response)
}

// CreateDrink добавляет напиток в меню магазина, доступно только администраторам
func (h *DrinkHandler) CreateDrink(c *gin.Context) {
	shopID, err := uuid.Parse(c.Param("shop_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop ID"})
		return
	}

	var req entity.CreateDrinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	drink, err := h.catalogService.CreateDrink(c.Request.Context(), shopID, &req)
	if err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create drink"})
		return
	}

	c.JSON(http.StatusCreated, drink)
}
