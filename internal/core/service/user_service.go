package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/montech/articles-api/internal/core/domain"
	"github.com/montech/articles-api/internal/core/ports"
)

const minPasswordLength = 6

// UserService implements signup, login and account lookups.
type UserService struct {
	users   ports.UserRepository
	roles   ports.RoleRepository
	tx      ports.Transactor
	creds   ports.CredentialService
	revoker ports.TokenRevoker
	logger  zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	tx ports.Transactor,
	creds ports.CredentialService,
	revoker ports.TokenRevoker,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:   users,
		roles:   roles,
		tx:      tx,
		creds:   creds,
		revoker: revoker,
		logger:  logger,
	}
}

// ListUsers returns every user with the password hash cleared.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for _, u := range users {
		u.PasswordHash = ""
	}
	return users, nil
}

// Signup registers a user under the requested role (author by default) and
// returns a session token for it. Role lookup and user insert share one
// transaction.
func (s *UserService) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	email := domain.NormalizeEmail(in.Email)
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)

	if firstName == "" || lastName == "" || email == "" {
		return nil, fmt.Errorf("%w: firstName, lastName and email are required", domain.ErrValidation)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("signup: %w", err)
	}

	hash, err := s.creds.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	roleName := domain.NormalizeRoleName(in.Role)
	var created *domain.User
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		role, err := s.roles.FindOrCreate(ctx, roleName)
		if err != nil {
			return fmt.Errorf("resolve role %q: %w", roleName, err)
		}

		created, err = s.users.Create(ctx, &domain.User{
			FirstName:    firstName,
			LastName:     lastName,
			Email:        email,
			PasswordHash: hash,
			RoleID:       role.ID,
			ArticleIDs:   []string{},
		})
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("signup: %w", err)
	}

	token, err := s.creds.IssueToken(created.ID, created.Email)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", roleName).Msg("user registered")

	return &ports.AuthResult{UserID: created.ID, Email: created.Email, Token: token}, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.creds.VerifyPassword(password, user.PasswordHash) {
		s.logger.Debug().Str("user_id", user.ID).Msg("login rejected: wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.creds.IssueToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	return &ports.AuthResult{UserID: user.ID, Email: user.Email, Token: token}, nil
}

// Logout revokes the presented token until it would have expired anyway.
func (s *UserService) Logout(ctx context.Context, claims domain.TokenClaims) error {
	if claims.TokenID == "" || !claims.ExpiresAt.After(time.Now()) {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.Info().Str("user_id", claims.UserID).Msg("user logged out")
	return nil
}

func (s *UserService) RoleOf(ctx context.Context, userID string) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("resolve role: %w", err)
	}

	role, err := s.roles.FindByID(ctx, user.RoleID)
	if err != nil {
		return "", fmt.Errorf("resolve role for user %s: %w", userID, err)
	}
	return role.Name, nil
}
