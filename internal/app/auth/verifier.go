// Package auth resolves bearer tokens into user identities. Session and
// account management live in an external auth service; this package
// only asks it who a token belongs to.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"yourtranscript/internal/app/model"
)

// ErrUnauthenticated is returned for missing, expired, or unknown tokens.
var ErrUnauthenticated = errors.New("unauthenticated")

// Identity is a resolved, authenticated user.
type Identity struct {
	UserID string
	Tier   model.Tier
}

// Verifier resolves a bearer token into an identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// HTTPVerifier asks the external auth service to resolve tokens.
type HTTPVerifier struct {
	baseURL string
	http    *http.Client
}

// NewHTTPVerifier creates a verifier against the given auth service URL.
func NewHTTPVerifier(baseURL string) *HTTPVerifier {
	return &HTTPVerifier{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

type userResponse struct {
	ID   string `json:"id"`
	Tier string `json:"tier"`
}

// Verify resolves the token, returning ErrUnauthenticated when the auth
// service rejects it.
func (v *HTTPVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrUnauthenticated
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth service returned %d", resp.StatusCode)
	}

	var user userResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	if user.ID == "" {
		return nil, ErrUnauthenticated
	}

	tier := model.Tier(user.Tier)
	if tier == "" {
		tier = model.TierFree
	}
	return &Identity{UserID: user.ID, Tier: tier}, nil
}
