package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hotelstay/internal/lifecycle"
	"hotelstay/internal/model"
	"hotelstay/internal/service"
)

// AdminHandler handles staff order management endpoints.
type AdminHandler struct {
	orderService service.OrderService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(orderService service.OrderService) *AdminHandler {
	return &AdminHandler{orderService: orderService}
}

// UpdateStatusRequest represents a status change requested by staff.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListOrders godoc
// @Summary List every order, optionally by status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Success 200 {array} model.Order
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /admin/orders [get]
func (h *AdminHandler) ListOrders(c echo.Context) error {
	var filter model.OrderFilter
	if raw := c.QueryParam("status"); raw != "" {
		status, err := lifecycle.Parse(raw)
		if err != nil {
			return mapError(err)
		}
		filter.Status = &status
	}

	orders, err := h.orderService.ListAll(c.Request().Context(), filter)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

// Summary godoc
// @Summary Order counts and delivered revenue
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.OrderSummary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/orders/summary [get]
func (h *AdminHandler) Summary(c echo.Context) error {
	summary, err := h.orderService.Summary(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

// UpdateStatus godoc
// @Summary Advance or cancel an order
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param request body UpdateStatusRequest true "Next status"
// @Success 200 {object} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /admin/orders/{id}/status [put]
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	next, err := lifecycle.Parse(req.Status)
	if err != nil {
		return mapError(err)
	}

	order, err := h.orderService.Advance(c.Request().Context(), SessionUser(c), id, next)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, order)
}
