package dto

import (
	"time"

	"github.com/fitra-dev/jejak-api/internal/models"
)

// AuthorCreateRequest creates an author account.
type AuthorCreateRequest struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=6,max=255"`
}

// AuthorUpdateRequest patches an author; nil fields stay untouched.
type AuthorUpdateRequest struct {
	Username *string `json:"username" validate:"omitempty,max=255"`
	Password *string `json:"password" validate:"omitempty,min=6,max=255"`
}

// AuthorResponse is the API shape of an author.
type AuthorResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAuthorResponse maps an author to its API shape.
func NewAuthorResponse(author models.Author) AuthorResponse {
	return AuthorResponse{
		ID:        author.ID,
		Username:  author.Username,
		CreatedAt: author.CreatedAt,
		UpdatedAt: author.UpdatedAt,
	}
}

// ArticleCreateRequest creates an article.
type ArticleCreateRequest struct {
	AuthorID  uint                   `json:"author_id" validate:"required,gt=0"`
	Title     string                 `json:"title" validate:"required,max=255"`
	Body      string                 `json:"body"`
	Published string                 `json:"published" validate:"omitempty,oneof=Y N"`
	Meta      map[string]interface{} `json:"meta"`
}

// ArticleUpdateRequest patches an article; nil fields stay untouched.
type ArticleUpdateRequest struct {
	Title     *string `json:"title" validate:"omitempty,max=255"`
	Body      *string `json:"body"`
	Published *string `json:"published" validate:"omitempty,oneof=Y N"`
}

// ArticleResponse is the API shape of an article.
type ArticleResponse struct {
	ID        uint                   `json:"id"`
	AuthorID  uint                   `json:"author_id"`
	Title     string                 `json:"title"`
	Body      string                 `json:"body"`
	Published string                 `json:"published"`
	Meta      map[string]interface{} `json:"meta,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// NewArticleResponse maps an article to its API shape.
func NewArticleResponse(article models.Article) ArticleResponse {
	return ArticleResponse{
		ID:        article.ID,
		AuthorID:  article.AuthorID,
		Title:     article.Title,
		Body:      article.Body,
		Published: article.Published,
		Meta:      article.Meta,
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	}
}

// CommentCreateRequest creates a comment on an article.
type CommentCreateRequest struct {
	ArticleID uint   `json:"article_id" validate:"required,gt=0"`
	UserID    uint   `json:"user_id" validate:"required,gt=0"`
	Comment   string `json:"comment" validate:"required"`
	Published string `json:"published" validate:"omitempty,oneof=Y N"`
}

// CommentUpdateRequest patches a comment; nil fields stay untouched.
type CommentUpdateRequest struct {
	Comment   *string `json:"comment"`
	Published *string `json:"published" validate:"omitempty,oneof=Y N"`
}

// CommentResponse is the API shape of a comment.
type CommentResponse struct {
	ID        uint      `json:"id"`
	ArticleID uint      `json:"article_id"`
	UserID    uint      `json:"user_id"`
	Comment   string    `json:"comment"`
	Published string    `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCommentResponse maps a comment to its API shape.
func NewCommentResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		ArticleID: comment.ArticleID,
		UserID:    comment.UserID,
		Comment:   comment.Comment,
		Published: comment.Published,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}
