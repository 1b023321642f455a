package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/fitra-dev/jejak-api/internal/dto"
	"github.com/fitra-dev/jejak-api/internal/service"
	"github.com/fitra-dev/jejak-api/internal/utils"
)

// ContentHandler serves the demo content endpoints whose mutations feed the
// activity trail.
type ContentHandler struct {
	service service.ContentService
	logger  zerolog.Logger
}

// NewContentHandler constructs the handler instance.
func NewContentHandler(service service.ContentService, logger zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		service: service,
		logger:  logger.With().Str("component", "content_handler").Logger(),
	}
}

// Register wires the content routes.
func (h *ContentHandler) Register(router fiber.Router) {
	authors := router.Group("/authors")
	authors.Get("/", h.listAuthors)
	authors.Post("/", h.createAuthor)
	authors.Put("/:id", h.updateAuthor)
	authors.Delete("/:id", h.deleteAuthor)

	articles := router.Group("/articles")
	articles.Get("/", h.listArticles)
	articles.Post("/", h.createArticle)
	articles.Put("/:id", h.updateArticle)
	articles.Delete("/:id", h.deleteArticle)

	comments := router.Group("/comments")
	comments.Post("/", h.createComment)
	comments.Put("/:id", h.updateComment)
	comments.Delete("/:id", h.deleteComment)
}

func (h *ContentHandler) listAuthors(c *fiber.Ctx) error {
	authors, err := h.service.ListAuthors(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list authors")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list authors")
	}
	return utils.SendSuccess(c, "authors", authors)
}

func (h *ContentHandler) createAuthor(c *fiber.Ctx) error {
	var req dto.AuthorCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	author, err := h.service.CreateAuthor(c.UserContext(), req)
	if err != nil {
		return h.mutationError(c, err, "failed to create author")
	}
	return utils.SendCreated(c, "author created", author)
}

func (h *ContentHandler) updateAuthor(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var req dto.AuthorUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	author, err := h.service.UpdateAuthor(c.UserContext(), id, req)
	if err != nil {
		return h.mutationError(c, err, "failed to update author")
	}
	return utils.SendSuccess(c, "author updated", author)
}

func (h *ContentHandler) deleteAuthor(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.service.DeleteAuthor(c.UserContext(), id); err != nil {
		return h.mutationError(c, err, "failed to delete author")
	}
	return utils.SendSuccess(c, "author deleted", nil)
}

func (h *ContentHandler) listArticles(c *fiber.Ctx) error {
	articles, err := h.service.ListArticles(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list articles")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list articles")
	}
	return utils.SendSuccess(c, "articles", articles)
}

func (h *ContentHandler) createArticle(c *fiber.Ctx) error {
	var req dto.ArticleCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	article, err := h.service.CreateArticle(c.UserContext(), req)
	if err != nil {
		return h.mutationError(c, err, "failed to create article")
	}
	return utils.SendCreated(c, "article created", article)
}

func (h *ContentHandler) updateArticle(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var req dto.ArticleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	article, err := h.service.UpdateArticle(c.UserContext(), id, req)
	if err != nil {
		return h.mutationError(c, err, "failed to update article")
	}
	return utils.SendSuccess(c, "article updated", article)
}

func (h *ContentHandler) deleteArticle(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.service.DeleteArticle(c.UserContext(), id); err != nil {
		return h.mutationError(c, err, "failed to delete article")
	}
	return utils.SendSuccess(c, "article deleted", nil)
}

func (h *ContentHandler) createComment(c *fiber.Ctx) error {
	var req dto.CommentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	comment, err := h.service.CreateComment(c.UserContext(), req)
	if err != nil {
		return h.mutationError(c, err, "failed to create comment")
	}
	return utils.SendCreated(c, "comment created", comment)
}

func (h *ContentHandler) updateComment(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var req dto.CommentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	comment, err := h.service.UpdateComment(c.UserContext(), id, req)
	if err != nil {
		return h.mutationError(c, err, "failed to update comment")
	}
	return utils.SendSuccess(c, "comment updated", comment)
}

func (h *ContentHandler) deleteComment(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.service.DeleteComment(c.UserContext(), id); err != nil {
		return h.mutationError(c, err, "failed to delete comment")
	}
	return utils.SendSuccess(c, "comment deleted", nil)
}

func (h *ContentHandler) mutationError(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.SendError(c, fiber.StatusNotFound, "not found")
	}
	h.logger.Error().Err(err).Msg(message)
	return utils.SendError(c, fiber.StatusBadRequest, message)
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
