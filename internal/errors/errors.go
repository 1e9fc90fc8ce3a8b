package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Base error kinds. Every domain error wraps exactly one of them.
var (
	// ErrNotFound is returned when an id is absent from the ledger or catalog.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState is returned when an operation is not allowed in the current state.
	ErrInvalidState = errors.New("invalid state")
	// ErrUnauthenticated is returned when there is no valid session.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrWrongRole is returned when the session's actor may not perform the operation.
	ErrWrongRole = errors.New("wrong role")
)

var (
	ErrOrderNotFound      = fmt.Errorf("order %w", ErrNotFound)
	ErrRoomNotFound       = fmt.Errorf("room %w", ErrNotFound)
	ErrRestaurantNotFound = fmt.Errorf("restaurant %w", ErrNotFound)
	ErrFoodItemNotFound   = fmt.Errorf("food item %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)

	ErrEmptyCart          = fmt.Errorf("%w: cart is empty", ErrInvalidState)
	ErrRoomUnavailable    = fmt.Errorf("%w: room is not available", ErrInvalidState)
	ErrAlreadyBooked      = fmt.Errorf("%w: guest already has an active booking", ErrInvalidState)
	ErrNoBooking          = fmt.Errorf("%w: guest has no active booking", ErrInvalidState)
	ErrInvalidTransition  = fmt.Errorf("%w: status transition not allowed", ErrInvalidState)
	ErrUnknownStatus      = fmt.Errorf("%w: unknown order status", ErrInvalidState)
	ErrForeignItem        = fmt.Errorf("%w: food item does not belong to the restaurant", ErrInvalidState)
	ErrBookingFieldsAdmin = fmt.Errorf("%w: only guests carry booking fields", ErrInvalidState)
	ErrStaleOrder         = fmt.Errorf("%w: order status changed concurrently", ErrInvalidState)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)
	ErrNoSession          = fmt.Errorf("%w: no active session", ErrUnauthenticated)

	ErrNotGuest      = fmt.Errorf("%w: guest role required", ErrWrongRole)
	ErrNotAdmin      = fmt.Errorf("%w: admin role required", ErrWrongRole)
	ErrNotOrderOwner = fmt.Errorf("%w: order does not belong to you", ErrWrongRole)

	// ErrUserAlreadyExists is returned when signing up with a registered email.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// InputError collects field level validation failures. It matches ErrInvalidState.
type InputError struct {
	fields map[string][]string
}

// NewInputError creates an empty InputError.
func NewInputError() *InputError {
	return &InputError{fields: make(map[string][]string)}
}

// Add records a message for a field.
func (e *InputError) Add(field, msg string) {
	e.fields[field] = append(e.fields[field], msg)
}

// Empty reports whether no field failed.
func (e *InputError) Empty() bool {
	return len(e.fields) == 0
}

// Fields returns the failing fields and their messages.
func (e *InputError) Fields() map[string][]string {
	return e.fields
}

func (e *InputError) Error() string {
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.fields[k], ", "))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrInvalidState) match input errors.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidState
}

// AsInputError returns the InputError in err's chain, or nil.
func AsInputError(err error) *InputError {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr
	}
	return nil
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     map[string][]string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:  e.Message,
		Code:   e.Code,
		Fields: e.Fields,
	}
}

var specificCodes = []struct {
	err  error
	code string
}{
	{ErrOrderNotFound, "ORDER_NOT_FOUND"},
	{ErrRoomNotFound, "ROOM_NOT_FOUND"},
	{ErrRestaurantNotFound, "RESTAURANT_NOT_FOUND"},
	{ErrFoodItemNotFound, "FOOD_ITEM_NOT_FOUND"},
	{ErrUserNotFound, "USER_NOT_FOUND"},
	{ErrEmptyCart, "EMPTY_CART"},
	{ErrRoomUnavailable, "ROOM_UNAVAILABLE"},
	{ErrAlreadyBooked, "ALREADY_BOOKED"},
	{ErrNoBooking, "NO_ACTIVE_BOOKING"},
	{ErrInvalidTransition, "INVALID_TRANSITION"},
	{ErrUnknownStatus, "UNKNOWN_STATUS"},
	{ErrForeignItem, "FOREIGN_ITEM"},
	{ErrBookingFieldsAdmin, "BOOKING_FIELDS_NOT_ALLOWED"},
	{ErrStaleOrder, "STALE_ORDER"},
	{ErrInvalidCredentials, "INVALID_CREDENTIALS"},
	{ErrNoSession, "NO_SESSION"},
	{ErrNotGuest, "GUEST_REQUIRED"},
	{ErrNotAdmin, "ADMIN_REQUIRED"},
	{ErrNotOrderOwner, "NOT_ORDER_OWNER"},
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	if inputErr := AsInputError(err); inputErr != nil {
		httpErr := NewHTTPError(http.StatusBadRequest, inputErr.Error(), "INVALID_INPUT")
		httpErr.Fields = inputErr.Fields()
		return httpErr
	}

	if errors.Is(err, ErrUserAlreadyExists) {
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	}

	code := ""
	for _, sc := range specificCodes {
		if errors.Is(err, sc.err) {
			code = sc.code
			break
		}
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), orDefault(code, "NOT_FOUND"))
	case errors.Is(err, ErrInvalidState):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), orDefault(code, "INVALID_STATE"))
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), orDefault(code, "UNAUTHENTICATED"))
	case errors.Is(err, ErrWrongRole):
		return NewHTTPError(http.StatusForbidden, err.Error(), orDefault(code, "WRONG_ROLE"))
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

func orDefault(code, def string) string {
	if code == "" {
		return def
	}
	return code
}
