package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/agriconnect/agrimarket-backend/internal/actorctx"
	"github.com/agriconnect/agrimarket-backend/internal/repository"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ActorMiddleware resolves the X-User-ID header to a stored user and injects
// it into the request context. Session and token mechanics live upstream;
// core operations only ever see an explicit actor.
type ActorMiddleware struct {
	users repository.UserRepository
}

func NewActorMiddleware(users repository.UserRepository) *ActorMiddleware {
	return &ActorMiddleware{users: users}
}

func (m *ActorMiddleware) RequireActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Request().Header.Get("X-User-ID")
		if raw == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_user_id"})
		}
		user, err := m.users.FindByID(c.Request().Context(), id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unknown_user"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal_error"})
		}
		ctx := actorctx.WithActor(c.Request().Context(), user)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Set("actor", user)
		return next(c)
	}
}
