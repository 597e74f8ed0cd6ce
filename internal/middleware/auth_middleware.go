package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/winshaurya/alumnet/internal/app/models"
	"github.com/winshaurya/alumnet/internal/app/models/dto"
	"github.com/winshaurya/alumnet/internal/app/repositories"
	"github.com/winshaurya/alumnet/internal/pkg/apperrors"
	"github.com/winshaurya/alumnet/internal/pkg/auth"
	"github.com/winshaurya/alumnet/internal/pkg/identity"
	"github.com/winshaurya/alumnet/internal/pkg/logger"
)

// Context keys set by the auth middleware
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// Introspector resolves externally issued tokens to a provider identity
type Introspector interface {
	Introspect(ctx context.Context, token string) (*identity.ProviderIdentity, error)
}

// AuthMiddleware authenticates requests. Two token schemes are accepted:
// locally issued JWTs are tried first, then the external identity provider
// is asked about the token. Both normalize to the same context values
// before any handler runs.
type AuthMiddleware struct {
	jwtService   *auth.JWTService
	introspector Introspector
	userRepo     repositories.IUserRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, introspector Introspector, userRepo repositories.IUserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:   jwtService,
		introspector: introspector,
		userRepo:     userRepo,
	}
}

// Authenticate validates the bearer token and stores the caller's identity
// on the request context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// The websocket endpoint cannot set headers from a browser,
			// so the token may ride in a query parameter instead
			if queryToken := c.Query("token"); queryToken != "" {
				authHeader = "Bearer " + queryToken
			}
		}
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, "Invalid token format")
			return
		}

		// Scheme 1: locally issued JWT
		if claims, err := m.jwtService.ValidateToken(tokenString); err == nil {
			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextUserEmail, claims.Email)
			c.Set(ContextUserRole, claims.Role)
			c.Next()
			return
		} else if errors.Is(err, auth.ErrExpiredToken) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		// Scheme 2: externally issued token, resolved via introspection.
		// The provider knows nothing about roles; the local user row decides.
		providerIdentity, err := m.introspector.Introspect(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, identity.ErrUnavailable) {
				logger.Warn().Err(err).Msg("Identity provider unavailable during introspection")
			}
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		user, err := m.userRepo.GetByEmail(c.Request.Context(), providerIdentity.Email)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				// Known to the provider but not locally: treat as a
				// student with no account state
				c.Set(ContextUserID, int64(0))
				c.Set(ContextUserEmail, providerIdentity.Email)
				c.Set(ContextUserRole, string(models.RoleStudent))
				c.Next()
				return
			}
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		if user.Status == models.UserStatusDisabled {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "Account is disabled")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserEmail, user.Email)
		c.Set(ContextUserRole, string(user.Role))
		c.Next()
	}
}

// RequireRole rejects callers whose resolved role is not in the allowed set
func (m *AuthMiddleware) RequireRole(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, allowed := range roles {
			if role == string(allowed) {
				c.Next()
				return
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Insufficient permissions")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}

// GetUserID reads the authenticated user's id from the context
func GetUserID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserID)
}

func abortUnauthorized(c *gin.Context, details string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
