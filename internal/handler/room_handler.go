package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hotelstay/internal/service"
)

// RoomHandler handles room listing and booking endpoints.
type RoomHandler struct {
	bookingService service.BookingService
}

// NewRoomHandler creates a new room handler.
func NewRoomHandler(bookingService service.BookingService) *RoomHandler {
	return &RoomHandler{bookingService: bookingService}
}

// ListRooms godoc
// @Summary List rooms with live availability
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Room
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /rooms [get]
func (h *RoomHandler) ListRooms(c echo.Context) error {
	rooms, err := h.bookingService.ListRooms(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// BookRoom godoc
// @Summary Book a room for the current guest
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /rooms/{id}/book [post]
func (h *RoomHandler) BookRoom(c echo.Context) error {
	user, err := h.bookingService.BookRoom(c.Request().Context(), SessionID(c), c.Param("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// CheckOut godoc
// @Summary Check out and release the booked room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /rooms/checkout [post]
func (h *RoomHandler) CheckOut(c echo.Context) error {
	user, err := h.bookingService.CheckOut(c.Request().Context(), SessionID(c))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, user)
}
