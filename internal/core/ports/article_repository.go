package ports

import (
	"context"

	"github.com/montech/articles-api/internal/core/domain"
)

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) (*domain.Article, error)
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	// FindByIDs returns the articles with the given IDs in the order given.
	// Unknown IDs are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Article, error)
	List(ctx context.Context) ([]*domain.Article, error)
	// UpdateContent sets title and content only and refreshes UpdatedAt.
	UpdateContent(ctx context.Context, id, title, content string) (*domain.Article, error)
	// UpdateStatus sets status only and refreshes UpdatedAt.
	UpdateStatus(ctx context.Context, id string, status domain.ArticleStatus) (*domain.Article, error)
	Delete(ctx context.Context, id string) error
}
