package ports

import (
	"context"

	"github.com/montech/articles-api/internal/core/domain"
)

// ArticleInput holds the editable fields of an article.
type ArticleInput struct {
	Title   string
	Content string
}

// AuthorArticles is a user together with the articles it owns.
type AuthorArticles struct {
	User     *domain.User
	Articles []*domain.Article
}

// ArticleService defines article use cases.
type ArticleService interface {
	ListArticles(ctx context.Context) ([]*domain.Article, error)
	GetArticle(ctx context.Context, id string) (*domain.Article, error)
	GetArticlesByUser(ctx context.Context, userID string) (*AuthorArticles, error)
	CreateArticle(ctx context.Context, userID string, input ArticleInput) (*domain.Article, error)
	UpdateArticle(ctx context.Context, articleID, requesterID string, input ArticleInput) (*domain.Article, error)
	DeleteArticle(ctx context.Context, articleID, requesterID string) error
	// SetArticleStatus is reserved for editors; callers enforce the role.
	SetArticleStatus(ctx context.Context, articleID, status string) (*domain.Article, error)
}
