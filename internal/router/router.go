package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"hotelstay/internal/auth"
	"hotelstay/internal/errors"
	"hotelstay/internal/handler"
	"hotelstay/internal/model"
	"hotelstay/internal/service"
)

// Handlers groups every HTTP handler the API exposes.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Catalog *handler.CatalogHandler
	Room    *handler.RoomHandler
	Order   *handler.OrderHandler
	Admin   *handler.AdminHandler
	Seed    *handler.SeedHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	log *zap.Logger,
	jwtService *auth.JWTService,
	authService service.AuthService,
	h Handlers,
) {
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(log))
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.GET("/order-lifecycle", handler.OrderLifecycle)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/signup", h.Auth.Signup)

	// Secured routes (require a bearer token and a live session)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:    jwtService.Secret(),
		NewClaimsFunc: func(echo.Context) jwt.Claims { return jwtService.NewClaims() },
		ErrorHandler: func(c echo.Context, err error) error {
			return respond(errors.ErrNoSession)
		},
	}), LoadSession(authService))

	secured.POST("/auth/logout", h.Auth.Logout)
	secured.GET("/me", h.User.Me)
	secured.PATCH("/me", h.User.UpdateMe)
	secured.GET("/rooms", h.Room.ListRooms)
	secured.GET("/restaurants", h.Catalog.ListRestaurants)
	secured.GET("/restaurants/:id/menu", h.Catalog.Menu)
	secured.GET("/orders/:id/history", h.Order.History)

	// Guest routes
	guest := secured.Group("", RequireRole(model.RoleGuest))
	guest.POST("/rooms/:id/book", h.Room.BookRoom)
	guest.POST("/rooms/checkout", h.Room.CheckOut)
	guest.POST("/orders", h.Order.PlaceOrder)
	guest.GET("/orders", h.Order.ListMine)
	guest.POST("/orders/:id/cancel", h.Order.Cancel)

	// Admin routes
	admin := secured.Group("/admin", RequireRole(model.RoleAdmin))
	admin.GET("/orders", h.Admin.ListOrders)
	admin.GET("/orders/summary", h.Admin.Summary)
	admin.PUT("/orders/:id/status", h.Admin.UpdateStatus)
	admin.POST("/catalog/seed", h.Seed.SeedCatalog)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
