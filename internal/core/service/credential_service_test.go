package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/montech/articles-api/internal/core/domain"
)

func TestCredentialService_HashAndVerify(t *testing.T) {
	svc := NewCredentialService(testSecret, time.Hour, bcrypt.MinCost)

	hash, err := svc.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("expected password to be hashed")
	}
	if !svc.VerifyPassword("secret1", hash) {
		t.Error("expected correct password to verify")
	}
	if svc.VerifyPassword("secret2", hash) {
		t.Error("expected wrong password to fail verification")
	}
}

func TestCredentialService_DefaultCost(t *testing.T) {
	svc := NewCredentialService(testSecret, 0, 0)
	if svc.cost != DefaultBcryptCost {
		t.Errorf("expected cost %d, got %d", DefaultBcryptCost, svc.cost)
	}
	if svc.ttl != DefaultTokenTTL {
		t.Errorf("expected ttl %v, got %v", DefaultTokenTTL, svc.ttl)
	}
}

func TestCredentialService_TokenRoundTrip(t *testing.T) {
	svc := NewCredentialService(testSecret, time.Hour, bcrypt.MinCost)

	token, err := svc.IssueToken("user-1", "frank@x.com")
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken returned error: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "frank@x.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.TokenID == "" {
		t.Error("expected a token id")
	}
	if ttl := time.Until(claims.ExpiresAt); ttl <= 59*time.Minute || ttl > time.Hour {
		t.Errorf("expected expiry about one hour ahead, got %v", ttl)
	}
}

func TestCredentialService_TokenPayloadFields(t *testing.T) {
	svc := NewCredentialService(testSecret, time.Hour, bcrypt.MinCost)
	token, _ := svc.IssueToken("user-1", "frank@x.com")

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims["userId"] != "user-1" || claims["email"] != "frank@x.com" {
		t.Errorf("unexpected payload: %v", claims)
	}
}

func TestCredentialService_ExpiredToken(t *testing.T) {
	svc := NewCredentialService(testSecret, time.Hour, bcrypt.MinCost)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := svc.IssueToken("user-1", "frank@x.com")
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.VerifyToken(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestCredentialService_WrongSecret(t *testing.T) {
	issuer := NewCredentialService("one", time.Hour, bcrypt.MinCost)
	verifier := NewCredentialService("two", time.Hour, bcrypt.MinCost)

	token, _ := issuer.IssueToken("user-1", "frank@x.com")
	if _, err := verifier.VerifyToken(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCredentialService_RejectsOtherAlgorithms(t *testing.T) {
	svc := NewCredentialService(testSecret, time.Hour, bcrypt.MinCost)

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"userId": "user-1",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.VerifyToken(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for HS512 token, got %v", err)
	}
}

func TestCredentialService_Garbage(t *testing.T) {
	svc := NewCredentialService(testSecret, time.Hour, bcrypt.MinCost)
	if _, err := svc.VerifyToken("not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
