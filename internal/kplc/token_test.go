package kplc

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"invoicedl/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenConfig(baseURL string) config.KPLCConfig {
	return config.KPLCConfig{
		BaseURL:      baseURL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Scope:        "nuru_docs_private",
	}
}

func TestTokenClient_Acquire(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/token", r.URL.Path)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

			wantBasic := "Basic " + base64.StdEncoding.EncodeToString([]byte("client-id:client-secret"))
			assert.Equal(t, wantBasic, r.Header.Get("Authorization"))

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
			assert.Equal(t, "nuru_docs_private", r.PostForm.Get("scope"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"Bearer"}`))
		}))
		defer srv.Close()

		token, err := NewTokenClient(tokenConfig(srv.URL)).Acquire(ctx)

		require.NoError(t, err)
		assert.Equal(t, "tok-123", token)
	})

	t.Run("long token survives intact", func(t *testing.T) {
		// JWT-style tokens routinely run past 4 KiB; the response must never
		// be truncated on the success path.
		longToken := strings.Repeat("a", 5000)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"` + longToken + `","token_type":"Bearer"}`))
		}))
		defer srv.Close()

		token, err := NewTokenClient(tokenConfig(srv.URL)).Acquire(ctx)

		require.NoError(t, err)
		assert.Equal(t, longToken, token)
	})

	t.Run("non-200 is an auth error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
		}))
		defer srv.Close()

		token, err := NewTokenClient(tokenConfig(srv.URL)).Acquire(ctx)

		assert.Empty(t, token)
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, http.StatusUnauthorized, authErr.Status)
		assert.Contains(t, err.Error(), "Failed to get token: 401")
	})

	t.Run("missing access_token field", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"token_type":"Bearer"}`))
		}))
		defer srv.Close()

		token, err := NewTokenClient(tokenConfig(srv.URL)).Acquire(ctx)

		assert.Empty(t, token)
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		cfg := tokenConfig("http://127.0.0.1:1")
		cfg.HTTPTimeoutSec = 1

		_, err := NewTokenClient(cfg).Acquire(ctx)
		assert.Error(t, err)
	})
}
