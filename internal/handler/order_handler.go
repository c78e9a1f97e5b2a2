package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/agriconnect/agrimarket-backend/internal/model"
	"github.com/agriconnect/agrimarket-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	svc service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type OrderResponse struct {
	ID              uint64  `json:"id"`
	BuyerID         uint64  `json:"buyer_id"`
	FarmerID        uint64  `json:"farmer_id"`
	CropID          uint64  `json:"crop_id"`
	Quantity        float64 `json:"quantity"`
	TotalAmount     float64 `json:"total_amount"`
	Status          string  `json:"status"`
	DeliveryAddress string  `json:"delivery_address,omitempty"`
	DeliveryDate    *string `json:"delivery_date,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func toOrderResponse(o *model.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		BuyerID:         o.BuyerID,
		FarmerID:        o.FarmerID,
		CropID:          o.CropID,
		Quantity:        o.Quantity,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		DeliveryAddress: o.DeliveryAddress,
		DeliveryDate:    formatDate(o.DeliveryDate),
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       o.UpdatedAt.Format(time.RFC3339),
	}
}

type placeOrderRequest struct {
	CropID          uint64  `json:"crop_id"`
	Quantity        float64 `json:"quantity"`
	DeliveryAddress string  `json:"delivery_address"`
	DeliveryDate    string  `json:"delivery_date"`
	Notes           string  `json:"notes"`
}

func (h *OrderHandler) Create(c echo.Context) error {
	actor, _ := c.Get("actor").(*model.User)
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	deliveryDate, err := parseDate(req.DeliveryDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid delivery_date"))
	}
	order, err := h.svc.Place(c.Request().Context(), actor.ID, service.PlaceOrderInput{
		CropID:          req.CropID,
		Quantity:        req.Quantity,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryDate:    deliveryDate,
		Notes:           req.Notes,
	})
	if err != nil {
		status, code := errorStatus(err)
		return c.JSON(status, NewErrorResponse(code, err.Error()))
	}
	return c.JSON(http.StatusCreated, toOrderResponse(order))
}

func (h *OrderHandler) List(c echo.Context) error {
	actor, _ := c.Get("actor").(*model.User)
	orders, err := h.svc.ListForUser(c.Request().Context(), actor)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch orders"))
	}
	resp := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"orders": resp})
}

func (h *OrderHandler) Get(c echo.Context) error {
	actor, _ := c.Get("actor").(*model.User)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid order id"))
	}
	order, err := h.svc.Get(c.Request().Context(), id, actor.ID)
	if err != nil {
		status, code := errorStatus(err)
		return c.JSON(status, NewErrorResponse(code, err.Error()))
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	actor, _ := c.Get("actor").(*model.User)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid order id"))
	}
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	if req.Status == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "status is required"))
	}
	err = h.svc.UpdateStatus(c.Request().Context(), id, actor.ID, actor.UserType, model.OrderStatus(req.Status))
	if err != nil {
		status, code := errorStatus(err)
		return c.JSON(status, NewErrorResponse(code, err.Error()))
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
