package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIntrospect_ValidToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" {
			t.Errorf("path = %q, want /auth/v1/user", r.URL.Path)
		}
		if r.Header.Get("apikey") != "anon-key" {
			t.Errorf("apikey header = %q, want %q", r.Header.Get("apikey"), "anon-key")
		}
		if r.Header.Get("Authorization") != "Bearer provider-token" {
			t.Errorf("Authorization header = %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"uuid-123","email":"a@x.com"}`)
	}))
	t.Cleanup(srv.Close)

	client := NewSupabaseClient(srv.URL, "anon-key")
	identity, err := client.Introspect(context.Background(), "provider-token")
	if err != nil {
		t.Fatalf("Introspect() error: %v", err)
	}
	if identity.ID != "uuid-123" {
		t.Errorf("ID = %q, want %q", identity.ID, "uuid-123")
	}
	if identity.Email != "a@x.com" {
		t.Errorf("Email = %q, want %q", identity.Email, "a@x.com")
	}
}

func TestIntrospect_RejectedToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	client := NewSupabaseClient(srv.URL, "anon-key")
	if _, err := client.Introspect(context.Background(), "bad-token"); !errors.Is(err, ErrTokenRejected) {
		t.Errorf("Introspect() error = %v, want ErrTokenRejected", err)
	}
}

func TestIntrospect_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	client := NewSupabaseClient(srv.URL, "anon-key")
	if _, err := client.Introspect(context.Background(), "any"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Introspect() error = %v, want ErrUnavailable", err)
	}
}

func TestIntrospect_Unconfigured(t *testing.T) {
	t.Parallel()

	client := NewSupabaseClient("", "")
	if _, err := client.Introspect(context.Background(), "any"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Introspect() error = %v, want ErrUnavailable", err)
	}
}

func TestIntrospect_EmptyIdentity(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	t.Cleanup(srv.Close)

	client := NewSupabaseClient(srv.URL, "anon-key")
	if _, err := client.Introspect(context.Background(), "any"); !errors.Is(err, ErrTokenRejected) {
		t.Errorf("Introspect() error = %v, want ErrTokenRejected", err)
	}
}
