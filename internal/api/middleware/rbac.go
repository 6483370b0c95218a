package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RoleResolver looks up the role name of a user.
type RoleResolver interface {
	RoleOf(ctx context.Context, userID string) (string, error)
}

// RequireRole enforces role-based access control. It must run after Auth:
// the caller's role is resolved from the store on every request so role
// changes take effect without re-issuing tokens. Resolver errors (for example
// domain.ErrUserNotFound) are returned to the error handler.
func RequireRole(resolver RoleResolver, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodOptions {
				return next(c)
			}

			userID, _ := c.Get(ContextKeyUserID).(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			role, err := resolver.RoleOf(c.Request().Context(), userID)
			if err != nil {
				return err
			}
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"message": "You are not authorized to perform this action."})
			}

			c.Set(ContextKeyRole, role)
			return next(c)
		}
	}
}
