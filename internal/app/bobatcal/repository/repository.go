package repository

import (
	"context"
	"errors"

	"bobatcal/internal/app/bobatcal/entity"

	"github.com/google/uuid"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrShopNotFound   = errors.New("shop not found")
	ErrDrinkNotFound  = errors.New("drink not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrRatingNotFound = errors.New("rating not found")
	ErrDuplicatePlace = errors.New("shop with this place id already exists")
)

type ShopRepository interface {
	Create(ctx context.Context, shop *entity.Shop) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error)
	GetAll(ctx context.Context) ([]entity.Shop, error)
}

type DrinkRepository interface {
	Create(ctx context.Context, drink *entity.Drink) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Drink, error)
	GetByShopID(ctx context.Context, shopID uuid.UUID) ([]entity.Drink, error)
}

type RatingRepository interface {
	// Upsert атомарно создает или перезаписывает оценку пары (user, drink),
	// опираясь на уникальный индекс (user_id, drink_id)
	Upsert(ctx context.Context, rating *entity.Rating) error
	GetByUserAndDrink(ctx context.Context, userID, drinkID uuid.UUID) (*entity.Rating, error)
	// GetByDrinkID возвращает оценки напитка с данными авторов, новые первыми
	GetByDrinkID(ctx context.Context, drinkID uuid.UUID) ([]entity.Rating, error)
	// AggregatesByShop считает количество и среднее по каждому напитку магазина
	// одним батчевым запросом
	AggregatesByShop(ctx context.Context, shopID uuid.UUID) (map[uuid.UUID]entity.RatingAggregate, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByProviderAccount(ctx context.Context, provider, accountID string) (*entity.User, error)
}
