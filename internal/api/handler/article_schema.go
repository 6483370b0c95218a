package handler

import (
	"time"

	"github.com/montech/articles-api/internal/core/domain"
	"github.com/montech/articles-api/internal/core/ports"
)

type articleRequest struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type articleResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	User      string    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toArticleResponse(a *domain.Article) articleResponse {
	return articleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Status:    string(a.Status),
		User:      a.UserID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toArticleResponses(articles []*domain.Article) []articleResponse {
	out := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, toArticleResponse(a))
	}
	return out
}

func toAuthorResponse(aa *ports.AuthorArticles) authorResponse {
	u := aa.User
	return authorResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.RoleID,
		Articles:  toArticleResponses(aa.Articles),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
