package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)
	return token
}

func TestRefreshingTokenSource_KeepsValidToken(t *testing.T) {
	valid := signed(t, time.Now().Add(time.Hour))
	src := NewRefreshingTokenSource("http://127.0.0.1:1", "/token/refresh/", valid, "r", nil)

	token, err := src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, valid, token)
}

func TestRefreshingTokenSource_RefreshesExpiringToken(t *testing.T) {
	fresh := signed(t, time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token/refresh/", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "old-refresh", body["refresh"])
		_ = json.NewEncoder(w).Encode(map[string]string{"access": fresh, "refresh": "new-refresh"})
	}))
	defer srv.Close()

	src := NewRefreshingTokenSource(srv.URL, "/token/refresh/", signed(t, time.Now().Add(10*time.Second)), "old-refresh", nil)

	token, err := src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, token)
	assert.Equal(t, "new-refresh", src.refresh)
}

func TestRefreshingTokenSource_NoRefreshToken(t *testing.T) {
	src := NewRefreshingTokenSource("http://127.0.0.1:1", "/token/refresh/", signed(t, time.Now().Add(-time.Minute)), "", nil)

	_, err := src.Token(context.Background())
	assert.ErrorIs(t, err, ErrNoRefreshToken)
}

func TestRefreshingTokenSource_RefreshRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Token is invalid or expired"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	src := NewRefreshingTokenSource(srv.URL, "/token/refresh/", "", "r", nil)

	_, err := src.Token(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestRefreshingTokenSource_IgnoresContentType(t *testing.T) {
	fresh := signed(t, time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(`{"access":"` + fresh + `"}`))
	}))
	defer srv.Close()

	src := NewRefreshingTokenSource(srv.URL, "/token/refresh/", "", "keep-refresh", nil)

	token, err := src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, token)
	assert.Equal(t, "keep-refresh", src.refresh)
}
