package ports

import (
	"context"

	"github.com/montech/articles-api/internal/core/domain"
)

// SignupInput carries the registration form.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string // optional, defaults to author
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	UserID string
	Email  string
	Token  string
}

// UserService defines account use cases.
type UserService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	Signup(ctx context.Context, input SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, claims domain.TokenClaims) error
	// RoleOf resolves the name of the role assigned to userID.
	RoleOf(ctx context.Context, userID string) (string, error)
}
