package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Static reference data for listing forms.
type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

var cropCategories = []string{
	"Cereals", "Legumes", "Vegetables", "Fruits",
	"Root Tubers", "Cash Crops", "Herbs & Spices",
}

var kenyanCounties = []string{
	"Baringo", "Bomet", "Bungoma", "Busia", "Elgeyo-Marakwet",
	"Embu", "Garissa", "Homa Bay", "Isiolo", "Kajiado",
	"Kakamega", "Kericho", "Kiambu", "Kilifi", "Kirinyaga",
	"Kisii", "Kisumu", "Kitui", "Kwale", "Laikipia",
	"Lamu", "Machakos", "Makueni", "Mandera", "Marsabit",
	"Meru", "Migori", "Mombasa", "Murang'a", "Nairobi",
	"Nakuru", "Nandi", "Narok", "Nyamira", "Nyandarua",
	"Nyeri", "Samburu", "Siaya", "Taita-Taveta", "Tana River",
	"Tharaka-Nithi", "Trans Nzoia", "Turkana", "Uasin Gishu",
	"Vihiga", "Wajir", "West Pokot",
}

func (h *MetaHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"categories": cropCategories})
}

func (h *MetaHandler) Counties(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"counties": kenyanCounties})
}
