package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bobatcal/internal/app/bobatcal/entity"
	"bobatcal/internal/app/bobatcal/repository"
	"bobatcal/internal/app/bobatcal/repository/mocks"
	"bobatcal/internal/app/bobatcal/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockOAuthClient мок для OAuthUserInfoClient
type mockOAuthClient struct {
	mock.Mock
}

func (m *mockOAuthClient) FetchUserInfo(ctx context.Context, accessToken string) (*GoogleProfile, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GoogleProfile), args.Error(1)
}

func newAuthService() (*AuthService, *mocks.MockUserRepository, *mockOAuthClient, *util.JWTManager) {
	userRepo := new(mocks.MockUserRepository)
	oauthCli := new(mockOAuthClient)
	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	svc := NewAuthService(userRepo, oauthCli, jwtManager)
	return svc, userRepo, oauthCli, jwtManager
}

// ==================== SignIn Tests ====================

func TestSignIn_ExistingUser(t *testing.T) {
	svc, userRepo, oauthCli, jwtManager := newAuthService()
	ctx := context.Background()

	user := &entity.User{
		ID:                uuid.New(),
		Name:              "Ann",
		Role:              entity.RoleAdmin,
		Provider:          "google",
		ProviderAccountID: "sub-123",
	}

	oauthCli.On("FetchUserInfo", ctx, "valid-token").Return(&GoogleProfile{Sub: "sub-123", Name: "Ann"}, nil)
	userRepo.On("GetByProviderAccount", ctx, "google", "sub-123").Return(user, nil)

	session, err := svc.SignIn(ctx, &entity.SignInRequest{AccessToken: "valid-token"})

	assert.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, int64(3600), session.ExpiresIn)
	assert.Equal(t, user.ID, session.User.ID)
	// Существующий пользователь не создается заново
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	// Роль из БД попадает в claims токена
	claims, err := jwtManager.ValidateToken(session.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestSignIn_FirstSignInCreatesUser(t *testing.T) {
	svc, userRepo, oauthCli, _ := newAuthService()
	ctx := context.Background()

	oauthCli.On("FetchUserInfo", ctx, "valid-token").Return(&GoogleProfile{Sub: "sub-new", Name: "Bob", Picture: "bob.png"}, nil)
	userRepo.On("GetByProviderAccount", ctx, "google", "sub-new").Return(nil, repository.ErrUserNotFound)
	userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	session, err := svc.SignIn(ctx, &entity.SignInRequest{AccessToken: "valid-token"})

	assert.NoError(t, err)
	// Новый пользователь получает роль user, никогда admin
	assert.Equal(t, entity.RoleUser, session.User.Role)
	assert.Equal(t, "Bob", session.User.Name)
	assert.Equal(t, "bob.png", session.User.Image)
	assert.Equal(t, "sub-new", session.User.ProviderAccountID)
}

func TestSignIn_InvalidToken(t *testing.T) {
	svc, userRepo, oauthCli, _ := newAuthService()
	ctx := context.Background()

	oauthCli.On("FetchUserInfo", ctx, "bad-token").Return(nil, errors.New("status 401"))

	session, err := svc.SignIn(ctx, &entity.SignInRequest{AccessToken: "bad-token"})

	assert.ErrorIs(t, err, ErrInvalidOAuthToken)
	assert.Nil(t, session)
	userRepo.AssertNotCalled(t, "GetByProviderAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignIn_CreateUserError(t *testing.T) {
	svc, userRepo, oauthCli, _ := newAuthService()
	ctx := context.Background()

	oauthCli.On("FetchUserInfo", ctx, "valid-token").Return(&GoogleProfile{Sub: "sub-new", Name: "Bob"}, nil)
	userRepo.On("GetByProviderAccount", ctx, "google", "sub-new").Return(nil, repository.ErrUserNotFound)
	userRepo.On("Create", ctx, mock.Anything).Return(errors.New("db error"))

	session, err := svc.SignIn(ctx, &entity.SignInRequest{AccessToken: "valid-token"})

	assert.Error(t, err)
	assert.Nil(t, session)
}
