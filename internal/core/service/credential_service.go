package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/montech/articles-api/internal/core/domain"
)

const (
	DefaultBcryptCost = 12
	DefaultTokenTTL   = time.Hour
)

// sessionClaims is the JWT payload. userId and email are read by clients.
type sessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// CredentialService implements password hashing (bcrypt) and HS256 session tokens.
type CredentialService struct {
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

func NewCredentialService(secret string, tokenTTL time.Duration, bcryptCost int) *CredentialService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = DefaultBcryptCost
	}
	return &CredentialService{
		secret: []byte(secret),
		ttl:    tokenTTL,
		cost:   bcryptCost,
		now:    time.Now,
	}
}

func (s *CredentialService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *CredentialService) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs a token for userID that expires after the configured TTL.
func (s *CredentialService) IssueToken(userID, email string) (string, error) {
	now := s.now()
	claims := sessionClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature and expiry. Any failure is reported as
// domain.ErrInvalidToken.
func (s *CredentialService) VerifyToken(token string) (*domain.TokenClaims, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.UserID == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.TokenClaims{
		TokenID:   claims.ID,
		UserID:    claims.UserID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
