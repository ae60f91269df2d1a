package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bobatcal/internal/app/bobatcal/config"
	"bobatcal/internal/app/bobatcal/entity"
	"bobatcal/internal/app/bobatcal/handler"
	"bobatcal/internal/app/bobatcal/infrastructure/messaging"
	"bobatcal/internal/app/bobatcal/repository"
	"bobatcal/internal/app/bobatcal/service"
	"bobatcal/internal/app/bobatcal/util"
	"bobatcal/internal/app/bobatcal/worker"
	"bobatcal/pkg/logger"
)

func main() {
	// === ИНИЦИАЛИЗАЦИЯ КОНФИГУРАЦИИ ===
	// Загружаем конфигурацию из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init("bobatcal", logLevel)

	// === ПОДКЛЮЧЕНИЕ К POSTGRESQL ===
	// pgx connection pool плюс GORM поверх него через stdlib адаптер
	pool, err := connectDB(context.Background(), cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("Successfully connected to PostgreSQL")

	sqlDB := stdlib.OpenDBFromPool(pool)
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize GORM")
	}

	// === МИГРАЦИЯ СХЕМЫ ===
	// AutoMigrate создает таблицы и уникальные индексы:
	// idx_ratings_user_drink гарантирует одну оценку на пару (user, drink)
	if err := db.AutoMigrate(
		&entity.Shop{},
		&entity.Drink{},
		&entity.User{},
		&entity.Rating{},
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database schema")
	}

	// === ПОДКЛЮЧЕНИЕ К REDIS ===
	// Redis кеширует список магазинов
	shopCache, err := util.NewRedisShopCache(
		cfg.Redis.Address(),
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Cache.ShopsTTL,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer shopCache.Close()
	logger.Info().Msg("Successfully connected to Redis")

	// === ИНИЦИАЛИЗАЦИЯ KAFKA PRODUCER ===
	// Producer отправляет события RATING_SUBMITTED в топик rating_events
	kafkaProducer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().Msg("Successfully initialized Kafka producer")

	// === ИНИЦИАЛИЗАЦИЯ СЛОЯ РЕПОЗИТОРИЕВ ===
	// Репозитории отвечают за работу с PostgreSQL
	shopRepo := repository.NewShopRepository(db)
	drinkRepo := repository.NewDrinkRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	userRepo := repository.NewUserRepository(db)

	// === ИНИЦИАЛИЗАЦИЯ БИЗНЕС-ЛОГИКИ ===
	// Service layer координирует работу репозиториев, кеша и Kafka
	catalogService := service.NewCatalogService(shopRepo, drinkRepo, ratingRepo, shopCache)
	ratingService := service.NewRatingService(ratingRepo, drinkRepo, kafkaProducer)

	jwtManager := util.NewJWTManager(cfg.JWT.Secret, cfg.JWT.SessionTTL)
	googleClient := service.NewGoogleUserInfoClient(cfg.Google.UserInfoURL, cfg.Google.TimeoutSec)
	authService := service.NewAuthService(userRepo, googleClient, jwtManager)

	// === ИНИЦИАЛИЗАЦИЯ HTTP HANDLERS ===
	shopHandler := handler.NewShopHandler(catalogService)
	drinkHandler := handler.NewDrinkHandler(catalogService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	authHandler := handler.NewAuthHandler(authService)
	authMiddleware := handler.NewAuthMiddleware(jwtManager)

	// === НАСТРОЙКА МАРШРУТОВ ===
	router := handler.SetupRoutes(shopHandler, drinkHandler, ratingHandler, authHandler, authMiddleware)

	// === ЗАПУСК ФОНОВОГО ВОРКЕРА ===
	// Воркер по расписанию прогревает кеш списка магазинов
	cacheRefresher := worker.NewCacheRefresher(catalogService)
	if err := cacheRefresher.Start(context.Background(), cfg.Worker.CacheRefreshSchedule); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start cache refresher")
	}

	// === НАСТРОЙКА HTTP СЕРВЕРА ===
	// Production-ready настройки с таймаутами
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second, // Таймаут чтения запроса
		WriteTimeout: 15 * time.Second, // Таймаут записи ответа
		IdleTimeout:  60 * time.Second, // Таймаут idle соединений
	}

	// === ЗАПУСК HTTP СЕРВЕРА ===
	// Запускаем сервер в отдельной горутине для graceful shutdown
	go func() {
		logger.Info().Str("address", cfg.Server.Address()).Msg("Starting Bobatcal")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// === GRACEFUL SHUTDOWN ===
	// Ожидаем сигнала завершения (SIGINT или SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Bobatcal...")

	cacheRefresher.Stop()

	// Даем серверу 30 секунд на завершение текущих запросов
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Bobatcal stopped gracefully")
}

// connectDB устанавливает соединение с PostgreSQL используя pgx connection pool
// Использует retry logic с 10 попытками для устойчивости при запуске в Docker
func connectDB(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, err
	}

	// Оптимальные настройки пула для production
	poolConfig.MaxConns = 25                       // Максимум соединений в пуле
	poolConfig.MinConns = 5                        // Минимум соединений (держим открытыми)
	poolConfig.MaxConnLifetime = 5 * time.Minute   // Время жизни соединения
	poolConfig.MaxConnIdleTime = 1 * time.Minute   // Время простоя перед закрытием
	poolConfig.HealthCheckPeriod = 1 * time.Minute // Периодичность health checks

	// Пробуем подключиться с повторными попытками
	// При запуске в Docker когда PostgreSQL может быть еще не готов
	var pool *pgxpool.Pool
	for i := 0; i < 10; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to database, retrying")
		time.Sleep(3 * time.Second)
	}

	if err != nil {
		return nil, err
	}

	return pool, nil
}
