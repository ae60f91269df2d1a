package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GoogleProfile - данные пользователя, полученные от OAuth провайдера
// Sub - стабильный идентификатор аккаунта Google
type GoogleProfile struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Email   string `json:"email"`
}

// OAuthUserInfoClient интерфейс получения профиля по access token
// Используется для dependency injection и упрощения тестирования
type OAuthUserInfoClient interface {
	FetchUserInfo(ctx context.Context, accessToken string) (*GoogleProfile, error)
}

// GoogleUserInfoClient реализует OAuthUserInfoClient
// Отвечает только за HTTP запросы к userinfo endpoint Google
type GoogleUserInfoClient struct {
	userInfoURL string
	httpClient  *http.Client
}

// NewGoogleUserInfoClient создает новый HTTP клиент для userinfo endpoint
func NewGoogleUserInfoClient(userInfoURL string, timeoutSec int) *GoogleUserInfoClient {
	return &GoogleUserInfoClient{
		userInfoURL: userInfoURL,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
	}
}

// FetchUserInfo проверяет access token, запрашивая профиль у провайдера
// Невалидный или истекший токен дает ответ не-200 и ошибку
func (c *GoogleUserInfoClient) FetchUserInfo(ctx context.Context, accessToken string) (*GoogleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("userinfo endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var profile GoogleProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal userinfo response: %w", err)
	}

	if profile.Sub == "" {
		return nil, fmt.Errorf("userinfo response missing subject")
	}

	return &profile, nil
}
