package repository

import (
	"context"
	"errors"
	"fmt"

	"bobatcal/internal/app/bobatcal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type drinkRepository struct {
	db *gorm.DB
}

// NewDrinkRepository создает новый репозиторий напитков
func NewDrinkRepository(db *gorm.DB) DrinkRepository {
	return &drinkRepository{db: db}
}

// Create добавляет напиток в меню магазина
func (r *drinkRepository) Create(ctx context.Context, drink *entity.Drink) error {
	result := r.db.WithContext(ctx).Create(drink)
	if result.Error != nil {
		return fmt.Errorf("failed to create drink: %w", result.Error)
	}
	return nil
}

// GetByID получает напиток по ID
func (r *drinkRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Drink, error) {
	var drink entity.Drink
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&drink)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDrinkNotFound
		}
		return nil, fmt.Errorf("failed to get drink: %w", result.Error)
	}

	return &drink, nil
}

// GetByShopID получает все напитки магазина в алфавитном порядке
// Пустой список не означает отсутствие магазина: это проверяет service layer
func (r *drinkRepository) GetByShopID(ctx context.Context, shopID uuid.UUID) ([]entity.Drink, error) {
	var drinks []entity.Drink
	result := r.db.WithContext(ctx).Where("shop_id = ?", shopID).Order("name ASC").Find(&drinks)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to get drinks: %w", result.Error)
	}

	return drinks, nil
}
