package repository

import (
	"context"
	"errors"
	"fmt"

	"bobatcal/internal/app/bobatcal/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository создает новый репозиторий магазинов
func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

// Create создает новый магазин
// Уникальность внешнего place id обеспечивается индексом
func (r *shopRepository) Create(ctx context.Context, shop *entity.Shop) error {
	result := r.db.WithContext(ctx).Create(shop)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrDuplicatePlace
		}
		return fmt.Errorf("failed to create shop: %w", result.Error)
	}
	return nil
}

// GetByID получает магазин по ID
func (r *shopRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shop, error) {
	var shop entity.Shop
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&shop)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, fmt.Errorf("failed to get shop: %w", result.Error)
	}

	return &shop, nil
}

// GetAll получает все магазины отсортированные по имени
// Результат кешируется в Redis через service layer
func (r *shopRepository) GetAll(ctx context.Context) ([]entity.Shop, error) {
	var shops []entity.Shop
	result := r.db.WithContext(ctx).Order("name ASC").Find(&shops)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to get shops: %w", result.Error)
	}

	return shops, nil
}
