package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ArticleStatus is the editorial state of an article.
type ArticleStatus string

const (
	StatusPending  ArticleStatus = "pending"
	StatusApproved ArticleStatus = "approved"
	StatusRejected ArticleStatus = "rejected"

	// DefaultArticleStatus is what new articles are stored with. Editors
	// always write the lower-case forms above.
	DefaultArticleStatus ArticleStatus = "Pending"
)

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrNoArticles      = errors.New("no articles found for author")
	ErrInvalidStatus   = errors.New("invalid article status")
)

var editorStatuses = map[ArticleStatus]struct{}{
	StatusPending:  {},
	StatusApproved: {},
	StatusRejected: {},
}

// ParseArticleStatus lower-cases s and checks it against the editorial states.
func ParseArticleStatus(s string) (ArticleStatus, error) {
	status := ArticleStatus(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := editorStatuses[status]; !ok {
		return "", fmt.Errorf("%w: %q (want pending, approved or rejected)", ErrInvalidStatus, s)
	}
	return status, nil
}

// Article is a piece of content owned by exactly one user.
type Article struct {
	ID        string
	Title     string
	Content   string
	Status    ArticleStatus
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
