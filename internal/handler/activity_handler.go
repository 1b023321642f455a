package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/fitra-dev/jejak-api/internal/dto"
	"github.com/fitra-dev/jejak-api/internal/service"
	"github.com/fitra-dev/jejak-api/internal/utils"
)

// ActivityHandler serves the audit trail query endpoints.
type ActivityHandler struct {
	service service.ActivityService
	feed    service.ActivityFeedService
	logger  zerolog.Logger
}

// NewActivityHandler constructs the handler instance.
func NewActivityHandler(service service.ActivityService, feed service.ActivityFeedService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		feed:    feed,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register wires the activity routes.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Get("/recent", h.recent)
	router.Get("/system", h.system)
	router.Get("/scope/:model", h.scopeModel)
	router.Get("/scope/:model/:id", h.scope)
	router.Get("/issuer/:model/:id", h.issuer)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	req := dto.ActivityListRequest{
		Page:        page,
		PageSize:    pageSize,
		Level:       c.Query("level"),
		Action:      c.Query("action"),
		ObjectModel: c.Query("objectModel"),
		ObjectID:    c.Query("objectId"),
	}

	response, err := h.service.List(c.UserContext(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list activity")
		return utils.SendError(c, fiber.StatusBadRequest, "failed to list activity")
	}

	return utils.SendSuccess(c, "activity", response)
}

func (h *ActivityHandler) recent(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	window := 24 * time.Hour
	if raw := c.Query("window"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid window")
		}
		window = parsed
	}

	response, err := h.feed.Recent(c.UserContext(), window, limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load activity feed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load activity feed")
	}

	return utils.SendSuccess(c, "recent activity", response)
}

func (h *ActivityHandler) system(c *fiber.Ctx) error {
	entries, err := h.service.FindSystem(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load system activity")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load system activity")
	}

	return utils.SendSuccess(c, "system activity", entries)
}

func (h *ActivityHandler) scopeModel(c *fiber.Ctx) error {
	entries, err := h.service.FindByScopeModel(c.UserContext(), c.Params("model"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load scope activity")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load scope activity")
	}

	return utils.SendSuccess(c, "scope activity", entries)
}

func (h *ActivityHandler) scope(c *fiber.Ctx) error {
	entries, err := h.service.FindByScope(c.UserContext(), c.Params("model"), c.Params("id"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load scope activity")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load scope activity")
	}

	return utils.SendSuccess(c, "scope activity", entries)
}

func (h *ActivityHandler) issuer(c *fiber.Ctx) error {
	entries, err := h.service.FindByIssuer(c.UserContext(), c.Params("model"), c.Params("id"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load issuer activity")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load issuer activity")
	}

	return utils.SendSuccess(c, "issuer activity", entries)
}

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
