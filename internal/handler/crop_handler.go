package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/agriconnect/agrimarket-backend/internal/model"
	"github.com/agriconnect/agrimarket-backend/internal/repository"
	"github.com/agriconnect/agrimarket-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type CropHandler struct {
	svc service.CropService
}

func NewCropHandler(svc service.CropService) *CropHandler {
	return &CropHandler{svc: svc}
}

type CropResponse struct {
	ID           uint64  `json:"id"`
	FarmerID     uint64  `json:"farmer_id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"price_per_unit"`
	Description  string  `json:"description,omitempty"`
	HarvestDate  *string `json:"harvest_date,omitempty"`
	ExpiryDate   *string `json:"expiry_date,omitempty"`
	Location     string  `json:"location,omitempty"`
	County       string  `json:"county,omitempty"`
	QualityGrade string  `json:"quality_grade"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

func toCropResponse(c *model.Crop) CropResponse {
	return CropResponse{
		ID:           c.ID,
		FarmerID:     c.FarmerID,
		Name:         c.Name,
		Category:     c.Category,
		Quantity:     c.Quantity,
		Unit:         c.Unit,
		PricePerUnit: c.PricePerUnit,
		Description:  c.Description,
		HarvestDate:  formatDate(c.HarvestDate),
		ExpiryDate:   formatDate(c.ExpiryDate),
		Location:     c.Location,
		County:       c.County,
		QualityGrade: c.QualityGrade,
		Status:       string(c.Status),
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	val := t.Format("2006-01-02")
	return &val
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type createCropRequest struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"price_per_unit"`
	Description  string  `json:"description"`
	HarvestDate  string  `json:"harvest_date"`
	ExpiryDate   string  `json:"expiry_date"`
	Location     string  `json:"location"`
	County       string  `json:"county"`
	QualityGrade string  `json:"quality_grade"`
}

func (h *CropHandler) Create(c echo.Context) error {
	actor, _ := c.Get("actor").(*model.User)
	var req createCropRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid body"))
	}
	harvestDate, err := parseDate(req.HarvestDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid harvest_date"))
	}
	expiryDate, err := parseDate(req.ExpiryDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid expiry_date"))
	}
	crop, err := h.svc.Create(c.Request().Context(), actor, service.CreateCropInput{
		Name:         req.Name,
		Category:     req.Category,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		PricePerUnit: req.PricePerUnit,
		Description:  req.Description,
		HarvestDate:  harvestDate,
		ExpiryDate:   expiryDate,
		Location:     req.Location,
		County:       req.County,
		QualityGrade: req.QualityGrade,
	})
	if err != nil {
		status, code := errorStatus(err)
		return c.JSON(status, NewErrorResponse(code, err.Error()))
	}
	return c.JSON(http.StatusCreated, toCropResponse(crop))
}

func (h *CropHandler) List(c echo.Context) error {
	filter := repository.CropFilter{
		Category: c.QueryParam("category"),
		County:   c.QueryParam("county"),
		Search:   c.QueryParam("search"),
	}
	if raw := c.QueryParam("max_price"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid max_price"))
		}
		filter.MaxPrice = maxPrice
	}
	crops, err := h.svc.ListAvailable(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch crops"))
	}
	resp := make([]CropResponse, 0, len(crops))
	for i := range crops {
		resp = append(resp, toCropResponse(&crops[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"crops": resp})
}

func (h *CropHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid crop id"))
	}
	crop, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		status, code := errorStatus(err)
		return c.JSON(status, NewErrorResponse(code, "crop not found"))
	}
	return c.JSON(http.StatusOK, toCropResponse(crop))
}

func (h *CropHandler) ListMine(c echo.Context) error {
	actor, _ := c.Get("actor").(*model.User)
	crops, err := h.svc.ListByFarmer(c.Request().Context(), actor.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch crops"))
	}
	resp := make([]CropResponse, 0, len(crops))
	for i := range crops {
		resp = append(resp, toCropResponse(&crops[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"crops": resp})
}

func (h *CropHandler) Expire(c echo.Context) error {
	actor, _ := c.Get("actor").(*model.User)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid crop id"))
	}
	if err := h.svc.MarkExpired(c.Request().Context(), id, actor.ID); err != nil {
		status, code := errorStatus(err)
		return c.JSON(status, NewErrorResponse(code, err.Error()))
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
