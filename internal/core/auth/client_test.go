package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-manager/internal/infrastructure/config"
	"recipe-manager/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string, enabled bool) *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			Enabled: enabled,
			BaseURL: baseURL,
			APIKey:  "test-key",
			Timeout: 5 * time.Second,
		},
	}
}

func TestResolveDisabledReturnsAnonymous(t *testing.T) {
	client := NewClient(testConfig("http://localhost:9000", false))

	identity, err := client.Resolve(context.Background(), "whatever")
	require.NoError(t, err)
	assert.Equal(t, common.AnonymousIdentity, identity)
}

func TestResolveReturnsIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/identity", r.URL.Path)
		assert.Equal(t, "user-token", r.Header.Get("X-User-Token"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user_id":  "user-42",
			"is_admin": true,
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, true))

	identity, err := client.Resolve(context.Background(), "user-token")
	require.NoError(t, err)
	assert.Equal(t, "user-42", identity.UserID)
	assert.True(t, identity.IsAdmin)
}

func TestResolveUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, true))

	_, err := client.Resolve(context.Background(), "bad-token")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestResolveServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, true))

	_, err := client.Resolve(context.Background(), "user-token")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrUnauthorized)
}
