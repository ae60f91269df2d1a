package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bobatcal/internal/app/bobatcal/entity"
	"bobatcal/internal/app/bobatcal/repository"
	"bobatcal/internal/app/bobatcal/util"
	"bobatcal/pkg/logger"
	"bobatcal/pkg/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidOAuthToken = errors.New("invalid oauth token")
)

const googleProvider = "google"

// AuthService обменивает OAuth access token на локальную сессию
// Пользователь создается при первом входе с ролью user по умолчанию;
// повышение до admin выполняется только прямым изменением строки в БД
type AuthService struct {
	userRepo   repository.UserRepository
	oauthCli   OAuthUserInfoClient
	jwtManager *util.JWTManager
}

// NewAuthService создает новый сервис аутентификации с внедрением зависимостей
func NewAuthService(
	userRepo repository.UserRepository,
	oauthCli OAuthUserInfoClient,
	jwtManager *util.JWTManager,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		oauthCli:   oauthCli,
		jwtManager: jwtManager,
	}
}

// SignIn проверяет access token у провайдера и выдает токен сессии
// Роль берется из строки пользователя в БД в момент выдачи
func (s *AuthService) SignIn(ctx context.Context, req *entity.SignInRequest) (*entity.SessionResponse, error) {
	profile, err := s.oauthCli.FetchUserInfo(ctx, req.AccessToken)
	if err != nil {
		metrics.SessionsIssued.WithLabelValues("failed").Inc()
		logger.Warn().Err(err).Msg("OAuth token verification failed")
		return nil, ErrInvalidOAuthToken
	}

	user, err := s.userRepo.GetByProviderAccount(ctx, googleProvider, profile.Sub)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}

		// Первый вход: создаем пользователя с непривилегированной ролью
		user = &entity.User{
			ID:                uuid.New(),
			Name:              profile.Name,
			Image:             profile.Picture,
			Role:              entity.RoleUser,
			Provider:          googleProvider,
			ProviderAccountID: profile.Sub,
			CreatedAt:         time.Now(),
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		logger.Info().Str("user_id", user.ID.String()).Msg("Created user on first sign-in")
	}

	token, err := s.jwtManager.GenerateSessionToken(user.ID, user.Name, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	metrics.SessionsIssued.WithLabelValues("success").Inc()

	return &entity.SessionResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.jwtManager.GetSessionTTL().Seconds()),
		User:        *user,
	}, nil
}
