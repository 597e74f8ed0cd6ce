// Package identity resolves tokens issued by the external identity provider.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Introspection errors
var (
	ErrTokenRejected = errors.New("identity provider rejected the token")
	ErrUnavailable   = errors.New("identity provider unavailable")
)

// ProviderIdentity is the subset of the provider's user object the gateway
// needs. The role is not part of it: Supabase knows nothing about application
// roles, so the caller resolves the role from the local profile store.
type ProviderIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SupabaseClient introspects bearer tokens against a Supabase project's
// GoTrue endpoint (GET {url}/auth/v1/user).
type SupabaseClient struct {
	baseURL string
	anonKey string
	http    *http.Client
}

// NewSupabaseClient creates a new SupabaseClient for the given project URL
// and anon key.
func NewSupabaseClient(baseURL, anonKey string) *SupabaseClient {
	return &SupabaseClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		anonKey: anonKey,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Introspect resolves a bearer token to the provider's user identity.
// Exactly one attempt is made; there is no retry and no caching of results.
func (c *SupabaseClient) Introspect(ctx context.Context, token string) (*ProviderIdentity, error) {
	if c.baseURL == "" {
		return nil, ErrUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build introspection request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrTokenRejected
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var identity ProviderIdentity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("failed to decode introspection response: %w", err)
	}
	if identity.ID == "" || identity.Email == "" {
		return nil, ErrTokenRejected
	}

	return &identity, nil
}
