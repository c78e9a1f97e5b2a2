package handler

import (
	"net/http"

	"github.com/agriconnect/agrimarket-backend/internal/model"
	"github.com/agriconnect/agrimarket-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	users service.UserService
}

func NewAdminHandler(users service.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	actor, _ := c.Get("actor").(*model.User)
	users, err := h.users.List(c.Request().Context(), actor)
	if err != nil {
		status, code := errorStatus(err)
		return c.JSON(status, NewErrorResponse(code, err.Error()))
	}
	resp := make([]UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"users": resp})
}

func (h *AdminHandler) Stats(c echo.Context) error {
	actor, _ := c.Get("actor").(*model.User)
	stats, err := h.users.Stats(c.Request().Context(), actor)
	if err != nil {
		status, code := errorStatus(err)
		return c.JSON(status, NewErrorResponse(code, err.Error()))
	}
	return c.JSON(http.StatusOK, stats)
}
