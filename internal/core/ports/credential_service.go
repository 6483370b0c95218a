package ports

import (
	"context"
	"time"

	"github.com/montech/articles-api/internal/core/domain"
)

// CredentialService hashes passwords and issues/verifies session tokens.
type CredentialService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool
	IssueToken(userID, email string) (string, error)
	VerifyToken(token string) (*domain.TokenClaims, error)
}

// TokenRevoker tracks tokens invalidated before their expiry (logout).
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
