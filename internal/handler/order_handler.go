package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hotelstay/internal/service"
)

// OrderHandler handles guest order endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// PlaceOrderRequest represents a cart submitted for one restaurant.
type PlaceOrderRequest struct {
	RestaurantID string             `json:"restaurantId" validate:"required"`
	Items        []service.CartLine `json:"items" validate:"dive"`
}

// PlaceOrder godoc
// @Summary Place an in-room dining order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PlaceOrderRequest true "Cart"
// @Success 201 {object} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	var req PlaceOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.PlaceOrder(c.Request().Context(), SessionUser(c), req.RestaurantID, req.Items)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, order)
}

// ListMine godoc
// @Summary List the current guest's orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Order
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) ListMine(c echo.Context) error {
	orders, err := h.orderService.ListForUser(c.Request().Context(), SessionUser(c).ID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

// Cancel godoc
// @Summary Cancel an order before delivery
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return err
	}

	order, err := h.orderService.Cancel(c.Request().Context(), SessionUser(c), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, order)
}

// History godoc
// @Summary Status history of an order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {array} model.OrderStatusChange
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id}/history [get]
func (h *OrderHandler) History(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return err
	}

	history, err := h.orderService.History(c.Request().Context(), SessionUser(c), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, history)
}
