package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hotelstay/internal/seed"
	"hotelstay/internal/service"
)

// SeedHandler handles catalog seed endpoints.
type SeedHandler struct {
	catalogService service.CatalogService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(catalogService service.CatalogService) *SeedHandler {
	return &SeedHandler{catalogService: catalogService}
}

// SeedCatalogResponse represents the seed response.
type SeedCatalogResponse struct {
	Message string      `json:"message"`
	Result  seed.Result `json:"result"`
}

// SeedCatalog godoc
// @Summary Load a catalog, or the built-in one when the body is empty
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body seed.Catalog false "Catalog"
// @Success 200 {object} SeedCatalogResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/catalog/seed [post]
func (h *SeedHandler) SeedCatalog(c echo.Context) error {
	var catalog seed.Catalog
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&catalog); err != nil {
			return badRequest("invalid request body", "INVALID_REQUEST")
		}
	}
	if len(catalog.Restaurants) == 0 && len(catalog.FoodItems) == 0 && len(catalog.Rooms) == 0 {
		catalog = seed.Default()
	}

	res, err := h.catalogService.Seed(c.Request().Context(), catalog)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, SeedCatalogResponse{
		Message: "Catalog seeded successfully",
		Result:  res,
	})
}
