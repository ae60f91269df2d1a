package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bobatcal/internal/app/bobatcal/entity"
	"bobatcal/pkg/logger"
	"bobatcal/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(
	shopHandler *ShopHandler,
	drinkHandler *DrinkHandler,
	ratingHandler *RatingHandler,
	authHandler *AuthHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("bobatcal"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "bobatcal",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Вход через OAuth провайдера, публичный
	auth := router.Group("/auth")
	{
		auth.POST("/session", authHandler.CreateSession)
	}

	// Каталог: чтение публичное, запись только для администраторов
	shops := router.Group("/shops")
	{
		shops.GET("", shopHandler.GetShops)
		shops.GET("/:shop_id", shopHandler.GetShop)
		shops.GET("/:shop_id/drinks", drinkHandler.GetDrinks)

		admin := shops.Group("")
		admin.Use(authMiddleware.Authenticate())
		admin.Use(authMiddleware.RequireRole(entity.RoleAdmin))
		{
			admin.POST("", shopHandler.CreateShop)
			admin.POST("/:shop_id/drinks", drinkHandler.CreateDrink)
		}
	}

	// Оценки: чтение публичное, отправка для любого авторизованного пользователя
	drinks := router.Group("/drinks")
	{
		drinks.GET("/:drink_id/ratings", ratingHandler.GetRatings)

		protected := drinks.Group("")
		protected.Use(authMiddleware.Authenticate())
		{
			protected.POST("/:drink_id/ratings", ratingHandler.SubmitRating)
		}
	}

	return router
}
