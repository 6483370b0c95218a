package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/montech/articles-api/internal/core/domain"
	"github.com/montech/articles-api/internal/core/ports"
)

// ArticleService implements the article lifecycle. Writes that touch both an
// article and its owner's article list run in a single transaction.
type ArticleService struct {
	articles ports.ArticleRepository
	users    ports.UserRepository
	tx       ports.Transactor
	logger   zerolog.Logger
}

func NewArticleService(
	articles ports.ArticleRepository,
	users ports.UserRepository,
	tx ports.Transactor,
	logger zerolog.Logger,
) *ArticleService {
	return &ArticleService{articles: articles, users: users, tx: tx, logger: logger}
}

func (s *ArticleService) ListArticles(ctx context.Context) ([]*domain.Article, error) {
	articles, err := s.articles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

func (s *ArticleService) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrArticleNotFound, "get article")
	}
	return article, nil
}

// GetArticlesByUser returns the user with its articles resolved. A missing
// user and a user without resolvable articles are both reported as
// domain.ErrNoArticles.
func (s *ArticleService) GetArticlesByUser(ctx context.Context, userID string) (*ports.AuthorArticles, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNoArticles
		}
		return nil, fmt.Errorf("articles by user: %w", err)
	}
	articles, err := s.articles.FindByIDs(ctx, user.ArticleIDs)
	if err != nil {
		return nil, fmt.Errorf("articles by user: %w", err)
	}
	if len(articles) == 0 {
		return nil, domain.ErrNoArticles
	}

	user.PasswordHash = ""
	return &ports.AuthorArticles{User: user, Articles: articles}, nil
}

// CreateArticle stores a new pending article for userID and appends it to
// the user's article list.
func (s *ArticleService) CreateArticle(ctx context.Context, userID string, in ports.ArticleInput) (*domain.Article, error) {
	title, content, err := validateArticleInput(in)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, notFoundOr(err, domain.ErrUserNotFound, "create article")
	}

	var created *domain.Article
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.articles.Create(ctx, &domain.Article{
			Title:   title,
			Content: content,
			Status:  domain.DefaultArticleStatus,
			UserID:  userID,
		})
		if err != nil {
			return fmt.Errorf("insert article: %w", err)
		}
		if err := s.users.AddArticle(ctx, userID, created.ID); err != nil {
			return fmt.Errorf("link article to user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.logger.Info().Str("article_id", created.ID).Str("user_id", userID).Msg("article created")
	return created, nil
}

// UpdateArticle overwrites title and content. Only the owner may edit.
func (s *ArticleService) UpdateArticle(ctx context.Context, articleID, requesterID string, in ports.ArticleInput) (*domain.Article, error) {
	title, content, err := validateArticleInput(in)
	if err != nil {
		return nil, err
	}

	article, err := s.articles.FindByID(ctx, articleID)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrArticleNotFound, "update article")
	}
	if article.UserID != requesterID {
		return nil, fmt.Errorf("%w: you are not authorized to edit this article", domain.ErrForbidden)
	}

	updated, err := s.articles.UpdateContent(ctx, article.ID, title, content)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrArticleNotFound, "update article")
	}
	return updated, nil
}

// DeleteArticle removes the article and its reference on the owner in one
// transaction. Only the owner may delete.
func (s *ArticleService) DeleteArticle(ctx context.Context, articleID, requesterID string) error {
	article, err := s.articles.FindByID(ctx, articleID)
	if err != nil {
		return notFoundOr(err, domain.ErrArticleNotFound, "delete article")
	}
	if article.UserID != requesterID {
		return fmt.Errorf("%w: you are not authorized to delete this article", domain.ErrForbidden)
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.articles.Delete(ctx, article.ID); err != nil {
			return fmt.Errorf("remove article: %w", err)
		}
		if err := s.users.RemoveArticle(ctx, article.UserID, article.ID); err != nil {
			return fmt.Errorf("unlink article from user: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	s.logger.Info().Str("article_id", article.ID).Str("user_id", requesterID).Msg("article deleted")
	return nil
}

// SetArticleStatus records an editorial decision. The status is lower-cased
// and must be one of pending, approved or rejected.
func (s *ArticleService) SetArticleStatus(ctx context.Context, articleID, status string) (*domain.Article, error) {
	article, err := s.articles.FindByID(ctx, articleID)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrArticleNotFound, "set article status")
	}

	next, err := domain.ParseArticleStatus(status)
	if err != nil {
		return nil, err
	}

	previous := article.Status

	updated, err := s.articles.UpdateStatus(ctx, article.ID, next)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrArticleNotFound, "set article status")
	}

	s.logger.Info().
		Str("article_id", articleID).
		Str("from", string(previous)).
		Str("to", string(next)).
		Msg("article status changed")

	return updated, nil
}

func validateArticleInput(in ports.ArticleInput) (string, string, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return "", "", fmt.Errorf("%w: title and content are required", domain.ErrValidation)
	}
	return title, content, nil
}

// notFoundOr passes sentinel through unchanged and wraps any other error with op.
func notFoundOr(err, sentinel error, op string) error {
	if errors.Is(err, sentinel) {
		return sentinel
	}
	return fmt.Errorf("%s: %w", op, err)
}
