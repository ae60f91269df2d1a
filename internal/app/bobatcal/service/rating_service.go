package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bobatcal/internal/app/bobatcal/entity"
	"bobatcal/internal/app/bobatcal/infrastructure"
	"bobatcal/internal/app/bobatcal/repository"
	"bobatcal/pkg/logger"
	"bobatcal/pkg/metrics"

	"github.com/google/uuid"
)

// RatingService обрабатывает бизнес-логику оценок напитков
// Координирует работу репозиториев и Kafka
type RatingService struct {
	ratingRepo    repository.RatingRepository
	drinkRepo     repository.DrinkRepository
	kafkaProducer infrastructure.MessagePublisher
}

// NewRatingService создает новый сервис оценок с внедрением зависимостей
func NewRatingService(
	ratingRepo repository.RatingRepository,
	drinkRepo repository.DrinkRepository,
	kafkaProducer infrastructure.MessagePublisher,
) *RatingService {
	return &RatingService{
		ratingRepo:    ratingRepo,
		drinkRepo:     drinkRepo,
		kafkaProducer: kafkaProducer,
	}
}

// SubmitRating принимает оценку напитка от пользователя
// 1. Проверяет существование напитка
// 2. Атомарно создает или перезаписывает оценку пары (user, drink);
//    отсутствующий reviewText затирает прежний текст
// 3. Отправляет событие RATING_SUBMITTED в Kafka
func (s *RatingService) SubmitRating(ctx context.Context, userID, drinkID uuid.UUID, req *entity.SubmitRatingRequest) (*entity.Rating, error) {
	// До записи убеждаемся что напиток существует: при его отсутствии
	// в БД не попадает ничего
	if _, err := s.drinkRepo.GetByID(ctx, drinkID); err != nil {
		if errors.Is(err, repository.ErrDrinkNotFound) {
			return nil, ErrDrinkNotFound
		}
		return nil, fmt.Errorf("failed to verify drink: %w", err)
	}

	rating := &entity.Rating{
		ID:          uuid.New(),
		RatingValue: req.RatingValue,
		ReviewText:  req.ReviewText,
		UserID:      userID,
		DrinkID:     drinkID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, fmt.Errorf("failed to upsert rating: %w", err)
	}

	// При конфликте по (user_id, drink_id) БД обновила существующую строку:
	// перечитываем чтобы вернуть её настоящий ID и created_at
	saved, err := s.ratingRepo.GetByUserAndDrink(ctx, userID, drinkID)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved rating: %w", err)
	}

	metrics.RatingsSubmitted.Inc()
	metrics.RatingValues.Observe(saved.RatingValue)

	event := entity.RatingEvent{
		EventType:   "RATING_SUBMITTED",
		RatingID:    saved.ID,
		DrinkID:     saved.DrinkID,
		UserID:      saved.UserID,
		RatingValue: saved.RatingValue,
		Timestamp:   time.Now(),
	}

	// Оценка уже сохранена, проблемы с Kafka не критичны
	if err := s.publishRatingEvent(ctx, event); err != nil {
		logger.Warn().Err(err).Msg("Failed to publish rating submitted event")
	}

	return saved, nil
}

// GetDrinkRatings получает все оценки напитка с данными авторов,
// новые первыми, вместе с количеством и средним значением
// Среднее пересчитывается на каждом чтении и равно 0 при отсутствии оценок
func (s *RatingService) GetDrinkRatings(ctx context.Context, drinkID uuid.UUID) (*entity.DrinkRatingsResponse, error) {
	if _, err := s.drinkRepo.GetByID(ctx, drinkID); err != nil {
		if errors.Is(err, repository.ErrDrinkNotFound) {
			return nil, ErrDrinkNotFound
		}
		return nil, fmt.Errorf("failed to verify drink: %w", err)
	}

	ratings, err := s.ratingRepo.GetByDrinkID(ctx, drinkID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ratings: %w", err)
	}

	response := &entity.DrinkRatingsResponse{
		RatingCount: len(ratings),
		Ratings:     make([]entity.RatingWithUser, 0, len(ratings)),
	}

	var total float64
	for _, rating := range ratings {
		total += rating.RatingValue

		item := entity.RatingWithUser{Rating: rating}
		if rating.User != nil {
			item.User = entity.RatingUser{
				Name:  rating.User.Name,
				Image: rating.User.Image,
			}
		}
		response.Ratings = append(response.Ratings, item)
	}

	if len(ratings) > 0 {
		response.AverageRating = roundToOneDecimal(total / float64(len(ratings)))
	}

	return response, nil
}

// publishRatingEvent отправляет событие об оценке в Kafka
// Ключ - DrinkID, чтобы события одного напитка попадали в одну партицию
func (s *RatingService) publishRatingEvent(ctx context.Context, event entity.RatingEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal rating event: %w", err)
	}

	if err := s.kafkaProducer.PublishMessage(ctx, event.DrinkID.String(), eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
