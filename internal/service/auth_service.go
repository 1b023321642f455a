package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitra-dev/jejak-api/internal/dto"
	"github.com/fitra-dev/jejak-api/internal/repository"
)

// ErrInvalidCredentials is returned when the username or password does not
// match a known account.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials")

// AuthService mints bearer tokens for known users.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
}

type authService struct {
	users     repository.UserRepository
	secret    string
	tokenTTL  time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuthService constructs the auth service.
func NewAuthService(users repository.UserRepository, secret string, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		secret:    secret,
		tokenTTL:  24 * time.Hour,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, err
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub": float64(user.ID),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return dto.LoginResponse{Token: token}, nil
}
