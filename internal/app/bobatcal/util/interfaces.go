package util

import (
	"context"

	"bobatcal/internal/app/bobatcal/entity"
)

// ShopCache интерфейс для работы с кешем списка магазинов
// Используется для dependency injection и упрощения тестирования
type ShopCache interface {
	SetShops(ctx context.Context, shops []entity.Shop) error
	GetShops(ctx context.Context) ([]entity.Shop, error)
	DeleteShops(ctx context.Context) error
	Close() error
}
