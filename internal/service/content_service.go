package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"github.com/fitra-dev/jejak-api/internal/dto"
	"github.com/fitra-dev/jejak-api/internal/models"
	"github.com/fitra-dev/jejak-api/internal/repository"
)

// ContentService manages the demo content domain (authors, articles,
// comments). Every mutation flows through a governed repository, so the
// activity trail is written as a side effect of the commit.
type ContentService interface {
	CreateAuthor(ctx context.Context, req dto.AuthorCreateRequest) (dto.AuthorResponse, error)
	UpdateAuthor(ctx context.Context, id uint, req dto.AuthorUpdateRequest) (dto.AuthorResponse, error)
	DeleteAuthor(ctx context.Context, id uint) error
	ListAuthors(ctx context.Context) ([]dto.AuthorResponse, error)

	CreateArticle(ctx context.Context, req dto.ArticleCreateRequest) (dto.ArticleResponse, error)
	UpdateArticle(ctx context.Context, id uint, req dto.ArticleUpdateRequest) (dto.ArticleResponse, error)
	DeleteArticle(ctx context.Context, id uint) error
	ListArticles(ctx context.Context) ([]dto.ArticleResponse, error)

	CreateComment(ctx context.Context, req dto.CommentCreateRequest) (dto.CommentResponse, error)
	UpdateComment(ctx context.Context, id uint, req dto.CommentUpdateRequest) (dto.CommentResponse, error)
	DeleteComment(ctx context.Context, id uint) error
}

type contentService struct {
	authors   repository.AuthorRepository
	articles  repository.ArticleRepository
	comments  repository.CommentRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewContentService constructs the content service.
func NewContentService(authors repository.AuthorRepository, articles repository.ArticleRepository, comments repository.CommentRepository, validate *validator.Validate, logger zerolog.Logger) ContentService {
	return &contentService{
		authors:   authors,
		articles:  articles,
		comments:  comments,
		validator: validate,
		logger:    logger.With().Str("component", "content_service").Logger(),
	}
}

func (s *contentService) CreateAuthor(ctx context.Context, req dto.AuthorCreateRequest) (dto.AuthorResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AuthorResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthorResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	author := models.Author{Username: req.Username, Password: string(hash)}
	if err := s.authors.Create(ctx, &author); err != nil {
		return dto.AuthorResponse{}, err
	}

	return dto.NewAuthorResponse(author), nil
}

func (s *contentService) UpdateAuthor(ctx context.Context, id uint, req dto.AuthorUpdateRequest) (dto.AuthorResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AuthorResponse{}, err
	}

	author, err := s.authors.Get(ctx, id)
	if err != nil {
		return dto.AuthorResponse{}, err
	}

	changes := map[string]interface{}{}
	if req.Username != nil {
		changes["username"] = *req.Username
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return dto.AuthorResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		changes["password"] = string(hash)
	}
	if len(changes) == 0 {
		return dto.NewAuthorResponse(*author), nil
	}

	if err := s.authors.Update(ctx, author, changes); err != nil {
		return dto.AuthorResponse{}, err
	}

	return dto.NewAuthorResponse(*author), nil
}

func (s *contentService) DeleteAuthor(ctx context.Context, id uint) error {
	author, err := s.authors.Get(ctx, id)
	if err != nil {
		return err
	}

	return s.authors.Delete(ctx, author)
}

func (s *contentService) ListAuthors(ctx context.Context) ([]dto.AuthorResponse, error) {
	authors, err := s.authors.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AuthorResponse, 0, len(authors))
	for _, author := range authors {
		responses = append(responses, dto.NewAuthorResponse(author))
	}
	return responses, nil
}

func (s *contentService) CreateArticle(ctx context.Context, req dto.ArticleCreateRequest) (dto.ArticleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ArticleResponse{}, err
	}

	article := models.Article{
		AuthorID:  req.AuthorID,
		Title:     req.Title,
		Body:      req.Body,
		Published: defaultPublished(req.Published),
		Meta:      datatypes.JSONMap(req.Meta),
	}
	if err := s.articles.Create(ctx, &article); err != nil {
		return dto.ArticleResponse{}, err
	}

	return dto.NewArticleResponse(article), nil
}

func (s *contentService) UpdateArticle(ctx context.Context, id uint, req dto.ArticleUpdateRequest) (dto.ArticleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ArticleResponse{}, err
	}

	article, err := s.articles.Get(ctx, id)
	if err != nil {
		return dto.ArticleResponse{}, err
	}

	changes := map[string]interface{}{}
	if req.Title != nil {
		changes["title"] = *req.Title
	}
	if req.Body != nil {
		changes["body"] = *req.Body
	}
	if req.Published != nil {
		changes["published"] = *req.Published
	}
	if len(changes) == 0 {
		return dto.NewArticleResponse(*article), nil
	}

	if err := s.articles.Update(ctx, article, changes); err != nil {
		return dto.ArticleResponse{}, err
	}

	return dto.NewArticleResponse(*article), nil
}

func (s *contentService) DeleteArticle(ctx context.Context, id uint) error {
	article, err := s.articles.Get(ctx, id)
	if err != nil {
		return err
	}

	return s.articles.Delete(ctx, article)
}

func (s *contentService) ListArticles(ctx context.Context) ([]dto.ArticleResponse, error) {
	articles, err := s.articles.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ArticleResponse, 0, len(articles))
	for _, article := range articles {
		responses = append(responses, dto.NewArticleResponse(article))
	}
	return responses, nil
}

func (s *contentService) CreateComment(ctx context.Context, req dto.CommentCreateRequest) (dto.CommentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CommentResponse{}, err
	}

	comment := models.Comment{
		ArticleID: req.ArticleID,
		UserID:    req.UserID,
		Comment:   req.Comment,
		Published: defaultPublished(req.Published),
	}
	if err := s.comments.Create(ctx, &comment); err != nil {
		return dto.CommentResponse{}, err
	}

	return dto.NewCommentResponse(comment), nil
}

func (s *contentService) UpdateComment(ctx context.Context, id uint, req dto.CommentUpdateRequest) (dto.CommentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CommentResponse{}, err
	}

	comment, err := s.comments.Get(ctx, id)
	if err != nil {
		return dto.CommentResponse{}, err
	}

	changes := map[string]interface{}{}
	if req.Comment != nil {
		changes["comment"] = *req.Comment
	}
	if req.Published != nil {
		changes["published"] = *req.Published
	}
	if len(changes) == 0 {
		return dto.NewCommentResponse(*comment), nil
	}

	if err := s.comments.Update(ctx, comment, changes); err != nil {
		return dto.CommentResponse{}, err
	}

	return dto.NewCommentResponse(*comment), nil
}

func (s *contentService) DeleteComment(ctx context.Context, id uint) error {
	comment, err := s.comments.Get(ctx, id)
	if err != nil {
		return err
	}

	return s.comments.Delete(ctx, comment)
}

func defaultPublished(value string) string {
	if value == "" {
		return "N"
	}
	return value
}
