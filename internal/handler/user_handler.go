package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hotelstay/internal/model"
	"hotelstay/internal/service"
)

// UserHandler serves the session owner's profile.
type UserHandler struct {
	authService service.AuthService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(authService service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// UpdateProfileRequest carries editable profile fields. An empty phone clears it.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=50"`
}

// Me godoc
// @Summary Get the current session user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.authService.CurrentUser(c.Request().Context(), SessionID(c))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Update name or phone of the current session user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /me [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.UpdateUser(c.Request().Context(), SessionID(c), model.UserPatch{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, user)
}
