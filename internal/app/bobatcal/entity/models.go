package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role представляет роль пользователя в системе
// Закрытое перечисление: сравнение строк из внешних источников не используется
type Role string

const (
	RoleUser  Role = "user"  // Обычный пользователь: может оставлять оценки
	RoleAdmin Role = "admin" // Администратор: может создавать магазины и напитки
)

// Valid проверяет что роль входит в закрытое перечисление
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Shop представляет магазин боба-чая
type Shop struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Address   string    `json:"address" gorm:"not null"`
	City      *string   `json:"city"`    // NULL если не указан, не пустая строка
	ZipCode   *string   `json:"zipCode"` // NULL если не указан
	Phone     *string   `json:"phone,omitempty"`
	Hours     *string   `json:"hours,omitempty"`
	PlaceID   *string   `json:"placeId,omitempty" gorm:"uniqueIndex"` // Внешний идентификатор места (Google Places)
	CreatedAt time.Time `json:"createdAt"`

	Drinks []Drink `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// Drink представляет напиток в меню магазина
// Принадлежит ровно одному магазину
type Drink struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	ShopID    uuid.UUID `json:"shopId" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"createdAt"`

	Shop *Shop `json:"-"`
}

// User представляет пользователя
// Создается при первом входе через OAuth провайдера; роль по умолчанию user
// и повышается только прямым изменением в БД
type User struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name              string    `json:"name"`
	Image             string    `json:"image"`
	Role              Role      `json:"role" gorm:"type:varchar(16);not null;default:user"`
	Provider          string    `json:"-" gorm:"not null;uniqueIndex:idx_users_provider_account"`
	ProviderAccountID string    `json:"-" gorm:"not null;uniqueIndex:idx_users_provider_account"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Rating представляет оценку напитка пользователем
// Инвариант: не более одной оценки на пару (user, drink),
// обеспечивается уникальным индексом idx_ratings_user_drink
type Rating struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	RatingValue float64   `json:"ratingValue" gorm:"not null"`
	ReviewText  string    `json:"reviewText"` // Пустая строка = отзыв без текста
	UserID      uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_drink"`
	DrinkID     uuid.UUID `json:"drinkId" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_drink;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	User *User `json:"-"`
}

// RatingAggregate содержит производные показатели оценок одного напитка
// Считается на каждом чтении из актуального набора Rating, никогда не хранится
type RatingAggregate struct {
	DrinkID       uuid.UUID `json:"drinkId"`
	AverageRating float64   `json:"averageRating"`
	RatingCount   int       `json:"ratingCount"`
}

// RatingEvent представляет событие оценки для Kafka
type RatingEvent struct {
	EventType   string    `json:"event_type"` // RATING_SUBMITTED
	RatingID    uuid.UUID `json:"rating_id"`
	DrinkID     uuid.UUID `json:"drink_id"`
	UserID      uuid.UUID `json:"user_id"`
	RatingValue float64   `json:"rating_value"`
	Timestamp   time.Time `json:"timestamp"`
}
