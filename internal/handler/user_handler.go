package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/agriconnect/agrimarket-backend/internal/model"
	"github.com/agriconnect/agrimarket-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type UserResponse struct {
	ID          uint64  `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email,omitempty"`
	PhoneNumber string  `json:"phone_number,omitempty"`
	UserType    string  `json:"user_type"`
	Location    string  `json:"location,omitempty"`
	County      string  `json:"county,omitempty"`
	Rating      float64 `json:"rating"`
	CreatedAt   string  `json:"created_at"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		UserType:    string(u.UserType),
		Location:    u.Location,
		County:      u.County,
		Rating:      u.Rating,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}

// toPublicUserResponse strips contact details for non-owners.
func toPublicUserResponse(u *model.User) UserResponse {
	resp := toUserResponse(u)
	resp.Email = ""
	resp.PhoneNumber = ""
	return resp
}

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	UserType    string `json:"user_type"`
	PhoneNumber string `json:"phone_number"`
	Location    string `json:"location"`
	County      string `json:"county"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	user, err := h.svc.Register(c.Request().Context(), service.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		UserType:    model.UserType(req.UserType),
		PhoneNumber: req.PhoneNumber,
		Location:    req.Location,
		County:      req.County,
	})
	if err != nil {
		status, code := errorStatus(err)
		return c.JSON(status, NewErrorResponse(code, err.Error()))
	}
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *UserHandler) GetPublic(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid user id"))
	}
	user, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		status, code := errorStatus(err)
		return c.JSON(status, NewErrorResponse(code, "user not found"))
	}
	return c.JSON(http.StatusOK, toPublicUserResponse(user))
}

func (h *UserHandler) Me(c echo.Context) error {
	actor, _ := c.Get("actor").(*model.User)
	return c.JSON(http.StatusOK, toUserResponse(actor))
}
