package util

import (
	"testing"
	"time"

	"bobatcal/internal/app/bobatcal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// ==================== GenerateSessionToken / ValidateToken Tests ====================

func TestGenerateAndValidateSessionToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := manager.GenerateSessionToken(userID, "Ann", entity.RoleUser)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "Ann", claims.Name)
	assert.Equal(t, entity.RoleUser, claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestValidateToken_AdminRolePreserved(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.GenerateSessionToken(uuid.New(), "Root", entity.RoleAdmin)
	assert.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	assert.True(t, claims.Role.Valid())
}

func TestValidateToken_WrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)

	token, err := other.GenerateSessionToken(uuid.New(), "Ann", entity.RoleUser)
	assert.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestValidateToken_Expired(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.GenerateSessionToken(uuid.New(), "Ann", entity.RoleUser)
	assert.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestValidateToken_Garbage(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	claims, err := manager.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestGetSessionTTL(t *testing.T) {
	manager := NewJWTManager("test-secret", 720*time.Hour)

	assert.Equal(t, 720*time.Hour, manager.GetSessionTTL())
}
