package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitra-dev/jejak-api/internal/models"
	"github.com/fitra-dev/jejak-api/internal/repository"
)

// SeedService provisions the default account so the demo API can mint
// tokens out of the box.
type SeedService interface {
	EnsureDefaults(ctx context.Context) error
}

type seedService struct {
	users  repository.UserRepository
	logger zerolog.Logger
}

// NewSeedService constructs the seed service.
func NewSeedService(users repository.UserRepository, logger zerolog.Logger) SeedService {
	return &seedService{
		users:  users,
		logger: logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) EnsureDefaults(ctx context.Context) error {
	if _, err := s.users.GetByUsername(ctx, "admin"); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{Username: "admin", Password: string(hash)}
	if err := s.users.Create(ctx, &user); err != nil {
		return err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("seeded default user")

	return nil
}
