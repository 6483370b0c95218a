package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevocationStore remembers logged-out session tokens until they expire.
// Key format: revoked:<token_id>
type TokenRevocationStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewTokenRevocationStore creates a TokenRevocationStore wrapping the given Redis client.
func NewTokenRevocationStore(client *redis.Client) *TokenRevocationStore {
	return &TokenRevocationStore{client: client, now: time.Now}
}

// Revoke marks tokenID as unusable until the given instant. Tokens that have
// already expired are ignored.
func (s *TokenRevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID has been revoked.
func (s *TokenRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func revokedKey(tokenID string) string {
	return "revoked:" + tokenID
}
