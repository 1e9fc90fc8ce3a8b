package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hotelstay/internal/lifecycle"
	"hotelstay/internal/model"
)

// LifecycleResponse describes the order state machine.
type LifecycleResponse struct {
	Statuses    []model.OrderStatus    `json:"statuses"`
	Terminal    []model.OrderStatus    `json:"terminal"`
	Transitions []lifecycle.Transition `json:"transitions"`
}

// OrderLifecycle godoc
// @Summary Order statuses and who may move between them
// @Tags orders
// @Produce json
// @Success 200 {object} LifecycleResponse
// @Router /order-lifecycle [get]
func OrderLifecycle(c echo.Context) error {
	resp := LifecycleResponse{
		Statuses:    lifecycle.Statuses(),
		Transitions: lifecycle.Transitions(),
	}
	for _, s := range resp.Statuses {
		if lifecycle.IsTerminal(s) {
			resp.Terminal = append(resp.Terminal, s)
		}
	}
	return c.JSON(http.StatusOK, resp)
}
