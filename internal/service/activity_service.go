package service

import (
	"context"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/fitra-dev/jejak-api/internal/activitylog"
	"github.com/fitra-dev/jejak-api/internal/dto"
	"github.com/fitra-dev/jejak-api/internal/repository"
)

// ActivityService exposes the audit trail query surface.
type ActivityService interface {
	List(ctx context.Context, req dto.ActivityListRequest) (dto.ActivityListResponse, error)
	FindByScope(ctx context.Context, model, id string) ([]dto.ActivityResponse, error)
	FindByScopeModel(ctx context.Context, model string) ([]dto.ActivityResponse, error)
	FindSystem(ctx context.Context) ([]dto.ActivityResponse, error)
	FindByIssuer(ctx context.Context, model, id string) ([]dto.ActivityResponse, error)
}

type activityService struct {
	repo      repository.ActivityLogRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewActivityService constructs the activity query service.
func NewActivityService(repo repository.ActivityLogRepository, validate *validator.Validate, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) List(ctx context.Context, req dto.ActivityListRequest) (dto.ActivityListResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ActivityListResponse{}, err
	}

	filter := repository.ActivityLogFilter{
		Page:        req.Page,
		PageSize:    req.PageSize,
		Level:       strings.TrimSpace(req.Level),
		Action:      strings.TrimSpace(req.Action),
		ObjectModel: strings.TrimSpace(req.ObjectModel),
		ObjectID:    strings.TrimSpace(req.ObjectID),
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ActivityListResponse{}, err
	}

	pagination := dto.PaginationMeta{
		Page:       maxInt(req.Page, 1),
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
	}

	return dto.ActivityListResponse{Items: dto.NewActivityResponses(entries), Pagination: pagination}, nil
}

func (s *activityService) FindByScope(ctx context.Context, model, id string) ([]dto.ActivityResponse, error) {
	entries, err := s.repo.FindByScope(ctx, activitylog.Ref{Model: model, ID: id})
	if err != nil {
		return nil, err
	}
	return dto.NewActivityResponses(entries), nil
}

func (s *activityService) FindByScopeModel(ctx context.Context, model string) ([]dto.ActivityResponse, error) {
	entries, err := s.repo.FindByScope(ctx, model)
	if err != nil {
		return nil, err
	}
	return dto.NewActivityResponses(entries), nil
}

func (s *activityService) FindSystem(ctx context.Context) ([]dto.ActivityResponse, error) {
	entries, err := s.repo.FindSystem(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewActivityResponses(entries), nil
}

func (s *activityService) FindByIssuer(ctx context.Context, model, id string) ([]dto.ActivityResponse, error) {
	entries, err := s.repo.FindByIssuer(ctx, activitylog.Ref{Model: model, ID: id})
	if err != nil {
		return nil, err
	}
	return dto.NewActivityResponses(entries), nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
