package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleAuthor = "author"
	RoleEditor = "editor"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user with email already exists")
	ErrInvalidCredentials = errors.New("invalid password")
)

// Role is a named permission set referenced by users.
type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// User models a registered author or editor.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	RoleID       string
	ArticleIDs   []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail trims and lower-cases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeRoleName returns the stored form of a role name, defaulting to author.
func NormalizeRoleName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return RoleAuthor
	}
	return name
}
