package router

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"hotelstay/internal/auth"
	"hotelstay/internal/errors"
	"hotelstay/internal/handler"
	"hotelstay/internal/model"
	"hotelstay/internal/service"
)

// LoadSession resolves the session named by the validated token. A token whose
// session was closed or expired is rejected.
func LoadSession(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return respond(errors.ErrNoSession)
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok || claims.SessionID() == "" {
				return respond(errors.ErrNoSession)
			}

			user, err := authService.CurrentUser(c.Request().Context(), claims.SessionID())
			if err != nil {
				return respond(err)
			}

			handler.SetSession(c, claims.SessionID(), user)
			return next(c)
		}
	}
}

// RequireRole rejects sessions of any other role.
func RequireRole(role model.Role) echo.MiddlewareFunc {
	denied := errors.ErrNotGuest
	if role == model.RoleAdmin {
		denied = errors.ErrNotAdmin
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := handler.SessionUser(c)
			if user == nil {
				return respond(errors.ErrNoSession)
			}
			if user.Role != role {
				return respond(denied)
			}
			return next(c)
		}
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Status >= 500 && v.Error != nil {
				log.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})
}

func respond(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
