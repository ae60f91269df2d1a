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

type CatalogServiceInterface interface {
	CreateShop(ctx context.Context, req *entity.CreateShopRequest) (*entity.Shop, error)
	GetShop(ctx context.Context, id uuid.UUID) (*entity.Shop, error)
	GetAllShops(ctx context.Context) ([]entity.Shop, error)
	CreateDrink(ctx context.Context, shopID uuid.UUID, req *entity.CreateDrinkRequest) (*entity.Drink, error)
	ListDrinks(ctx context.Context, shopID uuid.UUID) ([]entity.DrinkWithAggregates, error)
}

type ShopHandler struct {
	catalogService CatalogServiceInterface
	validator      *validator.Validate
}

func NewShopHandler(catalogService CatalogServiceInterface) *ShopHandler {
	return &ShopHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// GetShops возвращает все магазины, отсортированные по имени
func (h *ShopHandler) GetShops(c *gin.Context) {
	shops, err := h.catalogService.GetAllShops(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get shops"})
		return
	}

	response := entity.ShopListResponse{
		Shops: shops,
		Total: len(shops),
	}

	c.JSON(http.StatusOK, response)
}

// GetShop возвращает магазин по ID
func (h *ShopHandler) GetShop(c *gin.Context) {
	shopID, err := uuid.Parse(c.Param("shop_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop ID"})
		return
	}

	shop, err := h.catalogService.GetShop(c.Request.Context(), shopID)
	if err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get shop"})
		return
	}

	c.JSON(http.StatusOK, shop)
}

// CreateShop создает магазин, доступно только администраторам
func (h *ShopHandler) CreateShop(c *gin.Context) {
	var req entity.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	shop, err := h.catalogService.CreateShop(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateShop) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Shop with this place already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shop"})
		return
	}

	c.JSON(http.StatusCreated, shop)
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
