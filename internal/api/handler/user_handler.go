package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/montech/articles-api/internal/api/metrics"
	"github.com/montech/articles-api/internal/core/domain"
	"github.com/montech/articles-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse[[]userResponse]{Data: toUserResponses(users)})
}

// Signup handles POST /api/v1/users/signup.
func (h *UserHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.userService.Signup(c.Request().Context(), ports.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(metrics.RoleLabel(domain.NormalizeRoleName(req.Role))).Inc()
	return c.JSON(http.StatusCreated, authResponse{UserID: res.UserID, Email: res.Email, Token: res.Token})
}

// Login handles POST /api/v1/users/login.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.userService.Login(c.Request().Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		metrics.LoginsTotal.WithLabelValues("not_found").Inc()
		return err
	case errors.Is(err, domain.ErrInvalidCredentials):
		metrics.LoginsTotal.WithLabelValues("invalid_password").Inc()
		return err
	case err != nil:
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{UserID: res.UserID, Email: res.Email, Token: res.Token})
}

// Logout handles GET /api/v1/users/logout. The presented token is revoked
// until its natural expiry.
func (h *UserHandler) Logout(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.userService.Logout(c.Request().Context(), claims); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logoutResponse{Token: nil})
}
