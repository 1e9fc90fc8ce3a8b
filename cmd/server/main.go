package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hotelstay/docs" // swagger docs

	"hotelstay/internal/auth"
	"hotelstay/internal/cache"
	"hotelstay/internal/config"
	"hotelstay/internal/db"
	"hotelstay/internal/handler"
	"hotelstay/internal/logger"
	"hotelstay/internal/repository"
	"hotelstay/internal/router"
	"hotelstay/internal/seed"
	"hotelstay/internal/service"
)

// @title Hotel Stay API
// @version 1.0
// @description Hotel stay API with room booking, in-room dining orders and staff order tracking.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "hotelstay")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	gormDB, err := db.Open(cfg.DBDriver, cfg.MySQLDSN, cfg.SQLiteDSN, log)
	if err != nil {
		log.Fatal("database init", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}

	// Run migrations for all models
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	// Sessions need the strict client; catalog caching is best effort.
	var (
		sessionCache cache.Store = cache.NewMemory()
		catalogCache cache.Store = cache.NewMemory()
	)
	if cfg.RedisAddr != "" {
		redisClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx); err != nil {
			log.Warn("redis unreachable at startup", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		cancel()

		sessionCache = redisClient.Strict()
		catalogCache = redisClient
	} else {
		log.Info("REDIS_ADDR not set, keeping sessions in process memory")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	roomRepo := repository.NewRoomRepository(gormDB)
	catalogRepo := repository.NewCatalogRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)

	seeder := seed.NewSeeder(catalogRepo, roomRepo)
	seeded, err := seeder.ApplyIfEmpty(context.Background(), seed.Default())
	if err != nil {
		log.Fatal("seed catalog", zap.Error(err))
	}
	if seeded {
		log.Info("empty catalog seeded with built-in data")
	}

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.SessionTTL)
	sessions := auth.NewSessionStore(sessionCache, cfg.SessionTTL)

	var authenticator service.Authenticator
	if cfg.DemoAuth() {
		log.Warn("demo authentication enabled, any non-empty credentials are accepted")
		authenticator = service.NewDemoAuthenticator()
	} else {
		authenticator = service.NewAccountAuthenticator(userRepo)
	}

	// Initialize services
	authService := service.NewAuthService(authenticator, jwtService, sessions, log)
	catalogService := service.NewCatalogService(catalogRepo, seeder, catalogCache, log)
	bookingService := service.NewBookingService(roomRepo, authService, log)
	orderService := service.NewOrderService(orderRepo, catalogService, log)

	e := echo.New()
	e.HideBanner = true

	// Register routes
	router.Register(e, log, jwtService, authService, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(authService),
		Catalog: handler.NewCatalogHandler(catalogService),
		Room:    handler.NewRoomHandler(bookingService),
		Order:   handler.NewOrderHandler(orderService),
		Admin:   handler.NewAdminHandler(orderService),
		Seed:    handler.NewSeedHandler(catalogService),
	})

	swaggerURL := "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	if cfg.SwaggerHost != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
		docs.SwaggerInfo.Host = host
		swaggerURL = "http://" + host + "/swagger/index.html"
		if strings.HasPrefix(cfg.SwaggerHost, "https://") {
			docs.SwaggerInfo.Schemes = []string{"https"}
			swaggerURL = "https://" + host + "/swagger/index.html"
		}
	}
	log.Info("swagger documentation available", zap.String("url", swaggerURL))

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info("server starting", zap.String("addr", addr), zap.String("auth_mode", cfg.AuthMode))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal("server start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
