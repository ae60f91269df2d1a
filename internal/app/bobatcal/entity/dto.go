package entity

// CreateShopRequest - запрос на создание магазина
type CreateShopRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address" validate:"required,min=1,max=300"`
	City    string `json:"city" validate:"omitempty,max=100"`
	ZipCode string `json:"zipCode" validate:"omitempty,max=20"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Hours   string `json:"hours" validate:"omitempty,max=200"`
	PlaceID string `json:"placeId" validate:"omitempty,max=100"`
}

// CreateDrinkRequest - запрос на добавление напитка в меню магазина
type CreateDrinkRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// SubmitRatingRequest - запрос на отправку оценки напитка
// ratingValue в закрытом интервале [1.0, 5.0], текст отзыва опционален
type SubmitRatingRequest struct {
	RatingValue float64 `json:"ratingValue" validate:"required,gte=1,lte=5"`
	ReviewText  string  `json:"reviewText" validate:"omitempty,max=1000"`
}

// SignInRequest - запрос на обмен OAuth access token на локальную сессию
type SignInRequest struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

// RatingUser - публичные данные автора оценки
type RatingUser struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// RatingWithUser - оценка вместе с данными автора для выдачи наружу
type RatingWithUser struct {
	Rating
	User RatingUser `json:"user"`
}

// DrinkWithAggregates - напиток со средней оценкой и количеством оценок
type DrinkWithAggregates struct {
	Drink
	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
}

// DrinkRatingsResponse - ответ со списком оценок напитка и агрегатами
// averageRating равен 0 при отсутствии оценок
type DrinkRatingsResponse struct {
	AverageRating float64          `json:"averageRating"`
	RatingCount   int              `json:"ratingCount"`
	Ratings       []RatingWithUser `json:"ratings"`
}

// ShopListResponse - ответ со списком магазинов
type ShopListResponse struct {
	Shops []Shop `json:"shops"`
	Total int    `json:"total"`
}

// DrinkListResponse - ответ со списком напитков магазина
type DrinkListResponse struct {
	Drinks []DrinkWithAggregates `json:"drinks"`
	Total  int                   `json:"total"`
}

// SessionResponse - ответ с выданным токеном сессии
type SessionResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"` // время жизни токена в секундах
	User        User   `json:"user"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
