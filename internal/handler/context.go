package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"hotelstay/internal/errors"
	"hotelstay/internal/model"
)

const (
	sessionIDKey   = "session_id"
	sessionUserKey = "session_user"
)

// SetSession attaches the resolved session to the request context.
func SetSession(c echo.Context, sessionID string, user *model.User) {
	c.Set(sessionIDKey, sessionID)
	c.Set(sessionUserKey, user)
}

// SessionID returns the session id of the request, or "".
func SessionID(c echo.Context) string {
	id, _ := c.Get(sessionIDKey).(string)
	return id
}

// SessionUser returns the session record of the request, or nil.
func SessionUser(c echo.Context) *model.User {
	user, _ := c.Get(sessionUserKey).(*model.User)
	return user
}

// mapError converts a domain error into an echo error response.
func mapError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message, code string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}
	return nil
}

func orderIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, badRequest("invalid order id", "INVALID_ID")
	}
	return uint(id), nil
}
