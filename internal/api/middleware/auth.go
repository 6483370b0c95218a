package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/montech/articles-api/internal/core/domain"
)

// Context keys set by Auth and RequireRole.
const (
	ContextKeyClaims = "claims"
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
)

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.TokenClaims, error)
}

// RevocationChecker reports whether a token was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Auth validates the bearer token and injects its claims into the context.
// Pre-flight (OPTIONS) requests pass through untouched. revocations may be nil.
func Auth(verifier TokenVerifier, revocations RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodOptions {
				return next(c)
			}

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := verifier.VerifyToken(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if revocations != nil && claims.TokenID != "" {
				revoked, err := revocations.IsRevoked(c.Request().Context(), claims.TokenID)
				if err != nil {
					return fmt.Errorf("auth: %w", err)
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token has been revoked")
				}
			}

			c.Set(ContextKeyClaims, *claims)
			c.Set(ContextKeyUserID, claims.UserID)

			return next(c)
		}
	}
}
