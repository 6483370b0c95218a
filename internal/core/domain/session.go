package domain

import "time"

// TokenClaims is the identity carried by a verified session token.
type TokenClaims struct {
	TokenID   string
	UserID    string
	Email     string
	ExpiresAt time.Time
}
