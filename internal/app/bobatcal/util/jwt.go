package util

import (
	"errors"
	"fmt"
	"time"

	"bobatcal/internal/app/bobatcal/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// SessionClaims - полезная нагрузка токена сессии
// Роль копируется из строки пользователя в БД в момент выдачи токена:
// повышение роли вступает в силу при следующем входе
type SessionClaims struct {
	UserID uuid.UUID   `json:"user_id"`
	Name   string      `json:"name"`
	Role   entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager выдает и проверяет токены сессии
type JWTManager struct {
	secretKey  string
	sessionTTL time.Duration
}

func NewJWTManager(secretKey string, sessionTTL time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:  secretKey,
		sessionTTL: sessionTTL,
	}
}

// GenerateSessionToken выдает подписанный HS256 токен сессии
func (m *JWTManager) GenerateSessionToken(userID uuid.UUID, name string, role entity.Role) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: userID,
		Name:   name,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}

// ValidateToken проверяет подпись и срок действия токена сессии
func (m *JWTManager) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secretKey), nil
		},
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GetSessionTTL возвращает время жизни сессии
func (m *JWTManager) GetSessionTTL() time.Duration {
	return m.sessionTTL
}
