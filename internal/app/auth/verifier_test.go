package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yourtranscript/internal/app/model"
)

func TestVerifyResolvesIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/user", r.URL.Path)
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"id": "user-1", "tier": "pro"})
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL)
	ident, err := v.Verify(context.Background(), "token-123")

	require.NoError(t, err)
	assert.Equal(t, "user-1", ident.UserID)
	assert.Equal(t, model.TierPro, ident.Tier)
}

func TestVerifyDefaultsToFreeTier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "user-1"})
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL)
	ident, err := v.Verify(context.Background(), "token-123")

	require.NoError(t, err)
	assert.Equal(t, model.TierFree, ident.Tier)
}

func TestVerifyRejectedToken(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		v := NewHTTPVerifier(srv.URL)
		_, err := v.Verify(context.Background(), "bad-token")
		assert.ErrorIs(t, err, ErrUnauthenticated)

		srv.Close()
	}
}

func TestVerifyEmptyUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": ""})
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL)
	_, err := v.Verify(context.Background(), "token-123")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestVerifyAuthServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	v := NewHTTPVerifier(srv.URL)
	_, err := v.Verify(context.Background(), "token-123")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthenticated)
}
