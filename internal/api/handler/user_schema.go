package handler

import (
	"time"

	"github.com/montech/articles-api/internal/core/domain"
)

// ── Request types ─────────────────────────────────────────────────────────────

type signupRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
	Role      string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ── Response types ────────────────────────────────────────────────────────────

type authResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type logoutResponse struct {
	Token *string `json:"token"`
}

type userResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Articles  []string  `json:"articles"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// authorResponse is a user with its articles expanded.
type authorResponse struct {
	ID        string            `json:"id"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Email     string            `json:"email"`
	Role      string            `json:"role"`
	Articles  []articleResponse `json:"articles"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type dataResponse[T any] struct {
	Data T `json:"data"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func toUserResponse(u *domain.User) userResponse {
	articles := u.ArticleIDs
	if articles == nil {
		articles = []string{}
	}
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.RoleID,
		Articles:  articles,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}
