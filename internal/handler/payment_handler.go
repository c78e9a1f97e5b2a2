package handler

import (
	"net/http"
	"strconv"

	"github.com/agriconnect/agrimarket-backend/internal/model"
	"github.com/agriconnect/agrimarket-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	svc service.PaymentService
}

func NewPaymentHandler(svc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

type initiatePaymentRequest struct {
	OrderID       uint64 `json:"order_id"`
	PaymentMethod string `json:"payment_method"`
}

func (h *PaymentHandler) Initiate(c echo.Context) error {
	actor, _ := c.Get("actor").(*model.User)
	var req initiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	if req.OrderID == 0 {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "order_id is required"))
	}
	result, err := h.svc.Initiate(c.Request().Context(), req.OrderID, actor.ID, req.PaymentMethod)
	if err != nil {
		status, code := errorStatus(err)
		return c.JSON(status, NewErrorResponse(code, err.Error()))
	}
	return c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) ReleaseEscrow(c echo.Context) error {
	actor, _ := c.Get("actor").(*model.User)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid transaction id"))
	}
	if err := h.svc.ReleaseEscrow(c.Request().Context(), id, actor); err != nil {
		status, code := errorStatus(err)
		return c.JSON(status, NewErrorResponse(code, err.Error()))
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
