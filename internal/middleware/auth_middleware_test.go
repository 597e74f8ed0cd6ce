package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/winshaurya/alumnet/internal/app/models"
	"github.com/winshaurya/alumnet/internal/pkg/apperrors"
	"github.com/winshaurya/alumnet/internal/pkg/auth"
	"github.com/winshaurya/alumnet/internal/pkg/identity"
)

type stubUserRepo struct {
	users map[string]*models.User // keyed by email
}

func (r *stubUserRepo) Create(context.Context, *models.User) (int64, error) { return 0, nil }
func (r *stubUserRepo) GetByID(context.Context, int64) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}
func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}
func (r *stubUserRepo) EmailExists(context.Context, string) (bool, error)        { return false, nil }
func (r *stubUserRepo) UpdateLastLogin(context.Context, int64) error             { return nil }
func (r *stubUserRepo) UpdatePassword(context.Context, int64, string) error      { return nil }
func (r *stubUserRepo) UpdateEmail(context.Context, int64, string) error         { return nil }
func (r *stubUserRepo) UpdateStatus(context.Context, int64, models.UserStatus) error {
	return nil
}
func (r *stubUserRepo) SetVerified(context.Context, int64, bool) error { return nil }
func (r *stubUserRepo) Delete(context.Context, int64) error            { return nil }
func (r *stubUserRepo) List(context.Context, *models.RoleType, int, int) ([]*models.User, int64, error) {
	return nil, 0, nil
}
func (r *stubUserRepo) ListIDsByRole(context.Context, models.RoleType) ([]int64, error) {
	return nil, nil
}
func (r *stubUserRepo) CountByRole(context.Context) (map[models.RoleType]int64, error) {
	return nil, nil
}

type stubIntrospector struct {
	identity *identity.ProviderIdentity
	err      error
}

func (s *stubIntrospector) Introspect(context.Context, string) (*identity.ProviderIdentity, error) {
	return s.identity, s.err
}

func newTestRouter(m *AuthMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", m.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": GetUserID(c),
			"email":  c.GetString(ContextUserEmail),
			"role":   c.GetString(ContextUserRole),
		})
	})
	return router
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "alumnet-test",
	})
}

func TestAuthenticate_LocalJWT(t *testing.T) {
	jwtService := testJWTService()
	m := NewAuthMiddleware(jwtService, &stubIntrospector{err: identity.ErrTokenRejected}, &stubUserRepo{})
	router := newTestRouter(m)

	token, _, err := jwtService.GenerateToken(&models.User{ID: 7, Email: "x@y.com", Role: models.RoleAlumni})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["role"] != "alumni" || body["userID"] != float64(7) {
		t.Errorf("unexpected identity: %v", body)
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	m := NewAuthMiddleware(testJWTService(), &stubIntrospector{err: identity.ErrTokenRejected}, &stubUserRepo{})
	router := newTestRouter(m)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticate_QueryTokenFallback(t *testing.T) {
	jwtService := testJWTService()
	m := NewAuthMiddleware(jwtService, &stubIntrospector{err: identity.ErrTokenRejected}, &stubUserRepo{})
	router := newTestRouter(m)

	token, _, err := jwtService.GenerateToken(&models.User{ID: 3, Email: "s@y.com", Role: models.RoleStudent})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami?token="+token, nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestAuthenticate_ExpiredLocalToken(t *testing.T) {
	expiredService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: -time.Hour,
		TokenIssuer:    "alumnet-test",
	})
	m := NewAuthMiddleware(testJWTService(), &stubIntrospector{err: identity.ErrTokenRejected}, &stubUserRepo{})
	router := newTestRouter(m)

	token, _, err := expiredService.GenerateToken(&models.User{ID: 1, Email: "x@y.com", Role: models.RoleStudent})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	errObj, _ := body["error"].(map[string]interface{})
	if errObj["code"] != "AUTH_005" {
		t.Errorf("error code = %v, want AUTH_005", errObj["code"])
	}
}

func TestAuthenticate_ExternalToken(t *testing.T) {
	t.Run("known local user keeps local role", func(t *testing.T) {
		repo := &stubUserRepo{users: map[string]*models.User{
			"alum@example.com": {ID: 12, Email: "alum@example.com", Role: models.RoleAlumni, Status: models.UserStatusActive},
		}}
		m := NewAuthMiddleware(testJWTService(),
			&stubIntrospector{identity: &identity.ProviderIdentity{ID: "ext-1", Email: "alum@example.com"}}, repo)
		router := newTestRouter(m)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer some-external-token")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body["role"] != "alumni" || body["userID"] != float64(12) {
			t.Errorf("unexpected identity: %v", body)
		}
	})

	t.Run("unknown local user defaults to student", func(t *testing.T) {
		m := NewAuthMiddleware(testJWTService(),
			&stubIntrospector{identity: &identity.ProviderIdentity{ID: "ext-2", Email: "new@example.com"}},
			&stubUserRepo{})
		router := newTestRouter(m)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer some-external-token")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body["role"] != "student" || body["userID"] != float64(0) {
			t.Errorf("unexpected identity: %v", body)
		}
	})

	t.Run("disabled local account is rejected", func(t *testing.T) {
		repo := &stubUserRepo{users: map[string]*models.User{
			"off@example.com": {ID: 5, Email: "off@example.com", Role: models.RoleStudent, Status: models.UserStatusDisabled},
		}}
		m := NewAuthMiddleware(testJWTService(),
			&stubIntrospector{identity: &identity.ProviderIdentity{ID: "ext-3", Email: "off@example.com"}}, repo)
		router := newTestRouter(m)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer some-external-token")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		errObj, _ := body["error"].(map[string]interface{})
		if errObj["code"] != "AUTH_008" {
			t.Errorf("error code = %v, want AUTH_008", errObj["code"])
		}
	})

	t.Run("rejected by both schemes", func(t *testing.T) {
		m := NewAuthMiddleware(testJWTService(), &stubIntrospector{err: identity.ErrTokenRejected}, &stubUserRepo{})
		router := newTestRouter(m)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	jwtService := testJWTService()
	m := NewAuthMiddleware(jwtService, &stubIntrospector{err: identity.ErrTokenRejected}, &stubUserRepo{})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin-only", m.Authenticate(), m.RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	cases := []struct {
		name string
		role models.RoleType
		want int
	}{
		{"admin allowed", models.RoleAdmin, http.StatusOK},
		{"student forbidden", models.RoleStudent, http.StatusForbidden},
		{"alumni forbidden", models.RoleAlumni, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, _, err := jwtService.GenerateToken(&models.User{ID: 1, Email: "x@y.com", Role: tc.role})
			if err != nil {
				t.Fatalf("GenerateToken: %v", err)
			}
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			router.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}
