package ports

import (
	"context"

	"github.com/montech/articles-api/internal/core/domain"
)

// UserRepository persists users and their owned-article references.
type UserRepository interface {
	// Create inserts a user and returns it with its generated ID.
	// Returns domain.ErrUserExists when the email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	AddArticle(ctx context.Context, userID, articleID string) error
	RemoveArticle(ctx context.Context, userID, articleID string) error
}

// RoleRepository persists named roles.
type RoleRepository interface {
	// FindOrCreate returns the role called name, creating it when absent.
	FindOrCreate(ctx context.Context, name string) (*domain.Role, error)
	FindByID(ctx context.Context, id string) (*domain.Role, error)
}
