package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hotelstay/internal/service"
)

// CatalogHandler serves restaurants and menus.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListRestaurants godoc
// @Summary List restaurants
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Restaurant
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /restaurants [get]
func (h *CatalogHandler) ListRestaurants(c echo.Context) error {
	restaurants, err := h.catalogService.ListRestaurants(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, restaurants)
}

// Menu godoc
// @Summary List the food items of a restaurant
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Success 200 {array} model.FoodItem
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /restaurants/{id}/menu [get]
func (h *CatalogHandler) Menu(c echo.Context) error {
	items, err := h.catalogService.Menu(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, items)
}
