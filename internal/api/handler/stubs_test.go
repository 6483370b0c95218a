package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/montech/articles-api/internal/api/middleware"
	"github.com/montech/articles-api/internal/core/domain"
	"github.com/montech/articles-api/internal/core/ports"
)

type stubUserService struct {
	listFn   func(ctx context.Context) ([]*domain.User, error)
	signupFn func(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error)
	loginFn  func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	logoutFn func(ctx context.Context, claims domain.TokenClaims) error
	roleFn   func(ctx context.Context, userID string) (string, error)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	return s.signupFn(ctx, in)
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubUserService) Logout(ctx context.Context, claims domain.TokenClaims) error {
	return s.logoutFn(ctx, claims)
}

func (s *stubUserService) RoleOf(ctx context.Context, userID string) (string, error) {
	return s.roleFn(ctx, userID)
}

type stubArticleService struct {
	listFn      func(ctx context.Context) ([]*domain.Article, error)
	getFn       func(ctx context.Context, id string) (*domain.Article, error)
	byUserFn    func(ctx context.Context, userID string) (*ports.AuthorArticles, error)
	createFn    func(ctx context.Context, userID string, in ports.ArticleInput) (*domain.Article, error)
	updateFn    func(ctx context.Context, articleID, requesterID string, in ports.ArticleInput) (*domain.Article, error)
	deleteFn    func(ctx context.Context, articleID, requesterID string) error
	setStatusFn func(ctx context.Context, articleID, status string) (*domain.Article, error)
}

func (s *stubArticleService) ListArticles(ctx context.Context) ([]*domain.Article, error) {
	return s.listFn(ctx)
}

func (s *stubArticleService) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	return s.getFn(ctx, id)
}

func (s *stubArticleService) GetArticlesByUser(ctx context.Context, userID string) (*ports.AuthorArticles, error) {
	return s.byUserFn(ctx, userID)
}

func (s *stubArticleService) CreateArticle(ctx context.Context, userID string, in ports.ArticleInput) (*domain.Article, error) {
	return s.createFn(ctx, userID, in)
}

func (s *stubArticleService) UpdateArticle(ctx context.Context, articleID, requesterID string, in ports.ArticleInput) (*domain.Article, error) {
	return s.updateFn(ctx, articleID, requesterID, in)
}

func (s *stubArticleService) DeleteArticle(ctx context.Context, articleID, requesterID string) error {
	return s.deleteFn(ctx, articleID, requesterID)
}

func (s *stubArticleService) SetArticleStatus(ctx context.Context, articleID, status string) (*domain.Article, error) {
	return s.setStatusFn(ctx, articleID, status)
}

// newContext builds an echo context with the validator installed. A non-empty
// userID simulates the Auth middleware having run.
func newContext(method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if userID != "" {
		c.Set(middleware.ContextKeyClaims, domain.TokenClaims{TokenID: "jti-1", UserID: userID, Email: "frank@x.com"})
		c.Set(middleware.ContextKeyUserID, userID)
	}
	return c, rec
}

func httpCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}
