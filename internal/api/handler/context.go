package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/montech/articles-api/internal/api/middleware"
	"github.com/montech/articles-api/internal/core/domain"
)

// ctxClaims extracts the token claims injected by the Auth middleware. A
// missing user id means the route was mounted without Auth; reject with 401.
func ctxClaims(c echo.Context) (domain.TokenClaims, error) {
	claims, ok := c.Get(middleware.ContextKeyClaims).(domain.TokenClaims)
	if !ok || claims.UserID == "" {
		return domain.TokenClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}

func echoBadRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}
