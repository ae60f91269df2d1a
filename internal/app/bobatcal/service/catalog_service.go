package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"bobatcal/internal/app/bobatcal/entity"
	"bobatcal/internal/app/bobatcal/repository"
	"bobatcal/internal/app/bobatcal/util"
	"bobatcal/pkg/logger"
	"bobatcal/pkg/metrics"

	"github.com/google/uuid"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrShopNotFound  = errors.New("shop not found")
	ErrDrinkNotFound = errors.New("drink not found")
	ErrDuplicateShop = errors.New("shop with this place id already exists")
)

const serviceName = "bobatcal"

// CatalogService обрабатывает бизнес-логику магазинов и напитков
// Координирует работу репозиториев и Redis кеша
type CatalogService struct {
	shopRepo   repository.ShopRepository
	drinkRepo  repository.DrinkRepository
	ratingRepo repository.RatingRepository
	shopCache  util.ShopCache
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(
	shopRepo repository.ShopRepository,
	drinkRepo repository.DrinkRepository,
	ratingRepo repository.RatingRepository,
	shopCache util.ShopCache,
) *CatalogService {
	return &CatalogService{
		shopRepo:   shopRepo,
		drinkRepo:  drinkRepo,
		ratingRepo: ratingRepo,
		shopCache:  shopCache,
	}
}

// CreateShop создает новый магазин и инвалидирует кеш списка
// Пустые опциональные поля сохраняются как NULL, а не как пустые строки
func (s *CatalogService) CreateShop(ctx context.Context, req *entity.CreateShopRequest) (*entity.Shop, error) {
	shop := &entity.Shop{
		ID:        uuid.New(),
		Name:      req.Name,
		Address:   req.Address,
		City:      optional(req.City),
		ZipCode:   optional(req.ZipCode),
		Phone:     optional(req.Phone),
		Hours:     optional(req.Hours),
		PlaceID:   optional(req.PlaceID),
		CreatedAt: time.Now(),
	}

	if err := s.shopRepo.Create(ctx, shop); err != nil {
		if errors.Is(err, repository.ErrDuplicatePlace) {
			return nil, ErrDuplicateShop
		}
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}

	metrics.ShopsCreated.Inc()

	// Инвалидируем кеш чтобы при следующем запросе загрузить свежий список
	// Магазин уже создан, проблемы с кешем не критичны
	if err := s.shopCache.DeleteShops(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate shops cache")
	}

	return shop, nil
}

// GetShop получает магазин по ID из PostgreSQL
// Кеш не используется: запрашивается конкретный магазин
func (s *CatalogService) GetShop(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrShopNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}

	return shop, nil
}

// GetAllShops получает все магазины с кешированием в Redis
// Сначала проверяет кеш, если нет - загружает из БД и кеширует
func (s *CatalogService) GetAllShops(ctx context.Context) ([]entity.Shop, error) {
	shops, err := s.shopCache.GetShops(ctx)
	if err == nil && shops != nil {
		metrics.RecordCacheHit(serviceName, "shops")
		return shops, nil
	}
	metrics.RecordCacheMiss(serviceName, "shops")

	shops, err = s.shopRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get shops: %w", err)
	}

	// Данные получены из БД, проблемы с кешем не критичны
	if err := s.shopCache.SetShops(ctx, shops); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache shops")
	}

	return shops, nil
}

// RefreshShopCache принудительно перечитывает список магазинов из БД в кеш
// Вызывается фоновым воркером по расписанию
func (s *CatalogService) RefreshShopCache(ctx context.Context) error {
	shops, err := s.shopRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load shops for cache refresh: %w", err)
	}

	if err := s.shopCache.SetShops(ctx, shops); err != nil {
		return fmt.Errorf("failed to refresh shops cache: %w", err)
	}

	return nil
}

// CreateDrink добавляет напиток в меню магазина
// Проверяет существование магазина перед созданием
func (s *CatalogService) CreateDrink(ctx context.Context, shopID uuid.UUID, req *entity.CreateDrinkRequest) (*entity.Drink, error) {
	if _, err := s.shopRepo.GetByID(ctx, shopID); err != nil {
		if errors.Is(err, repository.ErrShopNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, fmt.Errorf("failed to verify shop: %w", err)
	}

	drink := &entity.Drink{
		ID:        uuid.New(),
		Name:      req.Name,
		ShopID:    shopID,
		CreatedAt: time.Now(),
	}

	if err := s.drinkRepo.Create(ctx, drink); err != nil {
		return nil, fmt.Errorf("failed to create drink: %w", err)
	}

	metrics.DrinksCreated.Inc()

	return drink, nil
}

// ListDrinks получает напитки магазина в алфавитном порядке,
// каждый с количеством оценок и средним значением, округленным до одного знака
// Агрегаты считаются одним батчевым запросом, а не по напитку за раз
func (s *CatalogService) ListDrinks(ctx context.Context, shopID uuid.UUID) ([]entity.DrinkWithAggregates, error) {
	drinks, err := s.drinkRepo.GetByShopID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to get drinks: %w", err)
	}

	// Пустое меню и несуществующий магазин различаются:
	// при пустом списке проверяем что сам магазин есть
	if len(drinks) == 0 {
		if _, err := s.shopRepo.GetByID(ctx, shopID); err != nil {
			if errors.Is(err, repository.ErrShopNotFound) {
				return nil, ErrShopNotFound
			}
			return nil, fmt.Errorf("failed to verify shop: %w", err)
		}
		return []entity.DrinkWithAggregates{}, nil
	}

	aggregates, err := s.ratingRepo.AggregatesByShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	result := make([]entity.DrinkWithAggregates, 0, len(drinks))
	for _, drink := range drinks {
		item := entity.DrinkWithAggregates{Drink: drink}
		if agg, ok := aggregates[drink.ID]; ok {
			item.AverageRating = roundToOneDecimal(agg.AverageRating)
			item.RatingCount = agg.RatingCount
		}
		result = append(result, item)
	}

	return result, nil
}

// roundToOneDecimal округляет среднюю оценку до одного знака после запятой
func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

// optional превращает пустую строку в NULL
func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
