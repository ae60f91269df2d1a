package mocks

import (
	"context"

	"bobatcal/internal/app/bobatcal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockShopRepository мок для ShopRepository
type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) Create(ctx context.Context, shop *entity.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}

func (m *MockShopRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Shop), args.Error(1)
}

func (m *MockShopRepository) GetAll(ctx context.Context) ([]entity.Shop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Shop), args.Error(1)
}

// MockDrinkRepository мок для DrinkRepository
type MockDrinkRepository struct {
	mock.Mock
}

func (m *MockDrinkRepository) Create(ctx context.Context, drink *entity.Drink) error {
	args := m.Called(ctx, drink)
	return args.Error(0)
}

func (m *MockDrinkRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Drink, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Drink), args.Error(1)
}

func (m *MockDrinkRepository) GetByShopID(ctx context.Context, shopID uuid.UUID) ([]entity.Drink, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Drink), args.Error(1)
}

// MockRatingRepository мок для RatingRepository
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Upsert(ctx context.Context, rating *entity.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) GetByUserAndDrink(ctx context.Context, userID, drinkID uuid.UUID) (*entity.Rating, error) {
	args := m.Called(ctx, userID, drinkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Rating), args.Error(1)
}

func (m *MockRatingRepository) GetByDrinkID(ctx context.Context, drinkID uuid.UUID) ([]entity.Rating, error) {
	args := m.Called(ctx, drinkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Rating), args.Error(1)
}

func (m *MockRatingRepository) AggregatesByShop(ctx context.Context, shopID uuid.UUID) (map[uuid.UUID]entity.RatingAggregate, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]entity.RatingAggregate), args.Error(1)
}

// MockUserRepository мок для UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByProviderAccount(ctx context.Context, provider, accountID string) (*entity.User, error) {
	args := m.Called(ctx, provider, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// MockShopCache мок для util.ShopCache
type MockShopCache struct {
	mock.Mock
}

func (m *MockShopCache) SetShops(ctx context.Context, shops []entity.Shop) error {
	args := m.Called(ctx, shops)
	return args.Error(0)
}

func (m *MockShopCache) GetShops(ctx context.Context) ([]entity.Shop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Shop), args.Error(1)
}

func (m *MockShopCache) DeleteShops(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShopCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockMessagePublisher мок для Kafka MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.Messages = append(m.Messages, value)
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
