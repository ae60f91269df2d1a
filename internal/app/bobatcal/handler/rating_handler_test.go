package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bobatcal/internal/app/bobatcal/entity"
	"bobatcal/internal/app/bobatcal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRatingService мок для RatingServiceInterface
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) SubmitRating(ctx context.Context, userID, drinkID uuid.UUID, req *entity.SubmitRatingRequest) (*entity.Rating, error) {
	args := m.Called(ctx, userID, drinkID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Rating), args.Error(1)
}

func (m *MockRatingService) GetDrinkRatings(ctx context.Context, drinkID uuid.UUID) (*entity.DrinkRatingsResponse, error) {
	args := m.Called(ctx, drinkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DrinkRatingsResponse), args.Error(1)
}

// ==================== GetRatings Tests ====================

func TestGetRatings_Success(t *testing.T) {
	router := setupTestRouter()
	mockService := new(MockRatingService)
	h := NewRatingHandler(mockService)
	router.GET("/drinks/:drink_id/ratings", h.GetRatings)

	drinkID := uuid.New()
	response := &entity.DrinkRatingsResponse{
		AverageRating: 4.0,
		RatingCount:   2,
		Ratings: []entity.RatingWithUser{
			{Rating: entity.Rating{ID: uuid.New(), DrinkID: drinkID, RatingValue: 5}, User: entity.RatingUser{Name: "Ann"}},
			{Rating: entity.Rating{ID: uuid.New(), DrinkID: drinkID, RatingValue: 3}, User: entity.RatingUser{Name: "Bob"}},
		},
	}
	mockService.On("GetDrinkRatings", mock.Anything, drinkID).Return(response, nil)

	req, _ := http.NewRequest(http.MethodGet, "/drinks/"+drinkID.String()+"/ratings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body entity.DrinkRatingsResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 4.0, body.AverageRating)
	assert.Equal(t, 2, body.RatingCount)
	assert.Equal(t, "Ann", body.Ratings[0].User.Name)
}

func TestGetRatings_DrinkNotFound(t *testing.T) {
	router := setupTestRouter()
	mockService := new(MockRatingService)
	h := NewRatingHandler(mockService)
	router.GET("/drinks/:drink_id/ratings", h.GetRatings)

	drinkID := uuid.New()
	mockService.On("GetDrinkRatings", mock.Anything, drinkID).Return(nil, service.ErrDrinkNotFound)

	req, _ := http.NewRequest(http.MethodGet, "/drinks/"+drinkID.String()+"/ratings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRatings_InvalidDrinkID(t *testing.T) {
	router := setupTestRouter()
	mockService := new(MockRatingService)
	h := NewRatingHandler(mockService)
	router.GET("/drinks/:drink_id/ratings", h.GetRatings)

	req, _ := http.NewRequest(http.MethodGet, "/drinks/abc/ratings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetDrinkRatings", mock.Anything, mock.Anything)
}

// ==================== SubmitRating Tests ====================

func submitRatingRouter(mockService *MockRatingService, userID uuid.UUID) *gin.Engine {
	router := setupTestRouter()
	h := NewRatingHandler(mockService)
	router.POST("/drinks/:drink_id/ratings", func(c *gin.Context) {
		// Имитация Authenticate middleware
		c.Set("user_id", userID.String())
		h.SubmitRating(c)
	})
	return router
}

func TestSubmitRating_ReturnsOKForCreateAndOverwrite(t *testing.T) {
	userID := uuid.New()
	drinkID := uuid.New()
	mockService := new(MockRatingService)
	router := submitRatingRouter(mockService, userID)

	saved := &entity.Rating{ID: uuid.New(), UserID: userID, DrinkID: drinkID, RatingValue: 4.5}
	mockService.On("SubmitRating", mock.Anything, userID, drinkID, mock.AnythingOfType("*entity.SubmitRatingRequest")).Return(saved, nil)

	body, _ := json.Marshal(entity.SubmitRatingRequest{RatingValue: 4.5, ReviewText: "Chewy pearls"})
	req, _ := http.NewRequest(http.MethodPost, "/drinks/"+drinkID.String()+"/ratings", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Перезапись и создание неразличимы для клиента, всегда 200
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitRating_NoUserInContext(t *testing.T) {
	router := setupTestRouter()
	mockService := new(MockRatingService)
	h := NewRatingHandler(mockService)
	router.POST("/drinks/:drink_id/ratings", h.SubmitRating)

	body, _ := json.Marshal(entity.SubmitRatingRequest{RatingValue: 3})
	req, _ := http.NewRequest(http.MethodPost, "/drinks/"+uuid.NewString()+"/ratings", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitRating_ValueOutOfRange(t *testing.T) {
	userID := uuid.New()
	mockService := new(MockRatingService)
	router := submitRatingRouter(mockService, userID)

	body, _ := json.Marshal(entity.SubmitRatingRequest{RatingValue: 5.5})
	req, _ := http.NewRequest(http.MethodPost, "/drinks/"+uuid.NewString()+"/ratings", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "SubmitRating", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitRating_ReviewTooLong(t *testing.T) {
	userID := uuid.New()
	mockService := new(MockRatingService)
	router := submitRatingRouter(mockService, userID)

	body, _ := json.Marshal(entity.SubmitRatingRequest{RatingValue: 4, ReviewText: strings.Repeat("a", 1001)})
	req, _ := http.NewRequest(http.MethodPost, "/drinks/"+uuid.NewString()+"/ratings", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitRating_DrinkNotFound(t *testing.T) {
	userID := uuid.New()
	drinkID := uuid.New()
	mockService := new(MockRatingService)
	router := submitRatingRouter(mockService, userID)

	mockService.On("SubmitRating", mock.Anything, userID, drinkID, mock.Anything).Return(nil, service.ErrDrinkNotFound)

	body, _ := json.Marshal(entity.SubmitRatingRequest{RatingValue: 4})
	req, _ := http.NewRequest(http.MethodPost, "/drinks/"+drinkID.String()+"/ratings", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
