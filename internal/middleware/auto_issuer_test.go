package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fitra-dev/jejak-api/internal/activitylog"
	"github.com/fitra-dev/jejak-api/internal/models"
)

type stubUserRepo struct {
	users map[uint]*models.User
}

func (s *stubUserRepo) Get(ctx context.Context, id uint) (*models.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	s.users[user.ID] = user
	return nil
}

func TestAutoIssuerStoresIdentityOnRequestContext(t *testing.T) {
	users := &stubUserRepo{users: map[uint]*models.User{4: {ID: 4, Username: "kate"}}}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(4))
		return c.Next()
	})
	app.Use(AutoIssuer(users, zerolog.Nop()))
	app.Get("/", func(c *fiber.Ctx) error {
		issuer := activitylog.IssuerFromContext(c.UserContext())
		require.NotNil(t, issuer)
		require.Equal(t, "Users", issuer.LogModel())
		require.Equal(t, "4", activitylog.PrimaryKeyString(issuer))
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAutoIssuerLeavesAnonymousRequestsUnattributed(t *testing.T) {
	users := &stubUserRepo{users: map[uint]*models.User{}}

	app := fiber.New()
	app.Use(AutoIssuer(users, zerolog.Nop()))
	app.Get("/", func(c *fiber.Ctx) error {
		require.Nil(t, activitylog.IssuerFromContext(c.UserContext()))
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
