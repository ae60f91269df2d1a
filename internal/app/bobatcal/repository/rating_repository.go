package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bobatcal/internal/app/bobatcal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository создает новый репозиторий оценок
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert создает оценку или перезаписывает существующую для пары (user, drink)
// Единственная защита от одновременных отправок одного пользователя -
// уникальный индекс (user_id, drink_id): INSERT ... ON CONFLICT DO UPDATE
// выполняется атомарно на стороне БД, блокировок на уровне приложения нет
func (r *ratingRepository) Upsert(ctx context.Context, rating *entity.Rating) error {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "drink_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"rating_value": rating.RatingValue,
			"review_text":  rating.ReviewText,
			"updated_at":   time.Now(),
		}),
	}).Create(rating)

	if result.Error != nil {
		return fmt.Errorf("failed to upsert rating: %w", result.Error)
	}

	return nil
}

// GetByUserAndDrink получает оценку конкретного пользователя для напитка
// Используется после Upsert, чтобы вернуть актуальную строку с её настоящим ID
func (r *ratingRepository) GetByUserAndDrink(ctx context.Context, userID, drinkID uuid.UUID) (*entity.Rating, error) {
	var rating entity.Rating
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND drink_id = ?", userID, drinkID).
		First(&rating)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, fmt.Errorf("failed to get rating: %w", result.Error)
	}

	return &rating, nil
}

// GetByDrinkID получает все оценки напитка вместе с авторами, новые первыми
func (r *ratingRepository) GetByDrinkID(ctx context.Context, drinkID uuid.UUID) ([]entity.Rating, error) {
	var ratings []entity.Rating
	result := r.db.WithContext(ctx).
		Preload("User").
		Where("drink_id = ?", drinkID).
		Order("created_at DESC").
		Find(&ratings)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to get ratings: %w", result.Error)
	}

	return ratings, nil
}

// AggregatesByShop считает количество и среднее значение оценок
// по каждому напитку магазина одним GROUP BY запросом
// Напитки без оценок в результат не попадают
func (r *ratingRepository) AggregatesByShop(ctx context.Context, shopID uuid.UUID) (map[uuid.UUID]entity.RatingAggregate, error) {
	var rows []entity.RatingAggregate
	result := r.db.WithContext(ctx).Raw(
		`SELECT r.drink_id AS drink_id, COUNT(r.id) AS rating_count, AVG(r.rating_value) AS average_rating
		 FROM ratings r
		 JOIN drinks d ON d.id = r.drink_id
		 WHERE d.shop_id = ?
		 GROUP BY r.drink_id`,
		shopID,
	).Scan(&rows)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", result.Error)
	}

	aggregates := make(map[uuid.UUID]entity.RatingAggregate, len(rows))
	for _, row := range rows {
		aggregates[row.DrinkID] = row
	}

	return aggregates, nil
}
