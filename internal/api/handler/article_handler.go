package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/montech/articles-api/internal/api/metrics"
	"github.com/montech/articles-api/internal/core/ports"
)

type ArticleHandler struct {
	articleService ports.ArticleService
}

func NewArticleHandler(articleService ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// List handles GET /api/v1/articles.
func (h *ArticleHandler) List(c echo.Context) error {
	articles, err := h.articleService.ListArticles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse[[]articleResponse]{Data: toArticleResponses(articles)})
}

// Get handles GET /api/v1/articles/article/:id.
func (h *ArticleHandler) Get(c echo.Context) error {
	article, err := h.articleService.GetArticle(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse[articleResponse]{Data: toArticleResponse(article)})
}

// ListByUser handles GET /api/v1/articles/:user/article.
func (h *ArticleHandler) ListByUser(c echo.Context) error {
	author, err := h.articleService.GetArticlesByUser(c.Request().Context(), c.Param("user"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse[authorResponse]{Data: toAuthorResponse(author)})
}

// Create handles POST /api/v1/articles/create. The caller becomes the owner.
func (h *ArticleHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req articleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	article, err := h.articleService.CreateArticle(c.Request().Context(), claims.UserID, ports.ArticleInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}

	metrics.ArticlesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, dataResponse[articleResponse]{Data: toArticleResponse(article)})
}

// Update handles PUT /api/v1/articles/update/:id.
func (h *ArticleHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req articleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	article, err := h.articleService.UpdateArticle(c.Request().Context(), c.Param("id"), claims.UserID, ports.ArticleInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse[articleResponse]{Data: toArticleResponse(article)})
}

// Delete handles DELETE /api/v1/articles/delete/:id.
func (h *ArticleHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.articleService.DeleteArticle(c.Request().Context(), c.Param("id"), claims.UserID); err != nil {
		return err
	}

	metrics.ArticlesDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Article deleted."})
}

// SetStatus handles PUT /api/v1/articles/status/:id. Mounted behind the
// editor role gate.
func (h *ArticleHandler) SetStatus(c echo.Context) error {
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	article, err := h.articleService.SetArticleStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	metrics.ArticleStatusChangesTotal.WithLabelValues(string(article.Status)).Inc()
	return c.JSON(http.StatusOK, dataResponse[articleResponse]{Data: toArticleResponse(article)})
}
