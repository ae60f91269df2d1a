package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==================== GoogleUserInfoClient Tests ====================

func TestFetchUserInfo_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sub":"sub-1","name":"Ann","picture":"ann.png","email":"ann@example.com"}`))
	}))
	defer server.Close()

	client := NewGoogleUserInfoClient(server.URL, 5)

	profile, err := client.FetchUserInfo(context.Background(), "token-123")

	assert.NoError(t, err)
	assert.Equal(t, "sub-1", profile.Sub)
	assert.Equal(t, "Ann", profile.Name)
	assert.Equal(t, "ann.png", profile.Picture)
}

func TestFetchUserInfo_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_token"}`))
	}))
	defer server.Close()

	client := NewGoogleUserInfoClient(server.URL, 5)

	profile, err := client.FetchUserInfo(context.Background(), "expired")

	assert.Error(t, err)
	assert.Nil(t, profile)
	assert.Contains(t, err.Error(), "401")
}

func TestFetchUserInfo_MissingSubject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"NoSub"}`))
	}))
	defer server.Close()

	client := NewGoogleUserInfoClient(server.URL, 5)

	profile, err := client.FetchUserInfo(context.Background(), "token")

	assert.Error(t, err)
	assert.Nil(t, profile)
}

func TestFetchUserInfo_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not-json`))
	}))
	defer server.Close()

	client := NewGoogleUserInfoClient(server.URL, 5)

	profile, err := client.FetchUserInfo(context.Background(), "token")

	assert.Error(t, err)
	assert.Nil(t, profile)
}

func TestFetchUserInfo_ServerUnreachable(t *testing.T) {
	client := NewGoogleUserInfoClient("http://127.0.0.1:1", 1)

	profile, err := client.FetchUserInfo(context.Background(), "token")

	assert.Error(t, err)
	assert.Nil(t, profile)
}
