package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hotelstay/internal/config"
	"hotelstay/internal/db"
	"hotelstay/internal/logger"
	"hotelstay/internal/model"
	"hotelstay/internal/repository"
	"hotelstay/internal/seed"
	"hotelstay/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "hotelstay-seed")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting seed script")

	// Connect to database
	gormDB, err := db.Open(cfg.DBDriver, cfg.MySQLDSN, cfg.SQLiteDSN, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database migrations completed")

	catalog := seed.Default()
	if cfg.CatalogURL != "" {
		log.Info("fetching catalog", zap.String("url", cfg.CatalogURL))
		catalog, err = fetchCatalog(cfg.CatalogURL)
		if err != nil {
			log.Fatal("failed to fetch catalog", zap.Error(err))
		}
	} else {
		log.Info("CATALOG_URL not set, using built-in catalog")
	}

	ctx := context.Background()
	seeder := seed.NewSeeder(repository.NewCatalogRepository(gormDB), repository.NewRoomRepository(gormDB))
	res, err := seeder.Apply(ctx, catalog)
	if err != nil {
		log.Fatal("failed to seed catalog", zap.Error(err))
	}
	log.Info("catalog seeded",
		zap.Int("restaurants", res.Restaurants),
		zap.Int("food_items", res.FoodItems),
		zap.Int("rooms", res.Rooms),
	)

	if cfg.AdminPassword == "" {
		log.Info("ADMIN_PASSWORD not set, skipping staff account")
		return
	}
	created, err := ensureAdmin(ctx, repository.NewUserRepository(gormDB), cfg)
	if err != nil {
		log.Fatal("failed to create staff account", zap.Error(err))
	}
	if created {
		log.Info("staff account created", zap.String("email", cfg.AdminEmail))
	} else {
		log.Info("staff account already exists", zap.String("email", cfg.AdminEmail))
	}
}

// fetchCatalog downloads a catalog document. Raw file hosts often serve JSON as
// text/plain, so the body is always decoded as JSON.
func fetchCatalog(url string) (seed.Catalog, error) {
	var catalog seed.Catalog

	resp, err := resty.New().
		SetTimeout(30*time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1*time.Second).
		SetHeader("Accept", "application/json").
		R().
		ForceContentType("application/json").
		SetResult(&catalog).
		Get(url)
	if err != nil {
		return catalog, fmt.Errorf("failed to fetch from API: %w", err)
	}
	if resp.IsError() {
		return catalog, fmt.Errorf("API returned status code: %d", resp.StatusCode())
	}

	return catalog, nil
}

// ensureAdmin creates the staff account unless its email is already registered.
func ensureAdmin(ctx context.Context, repo repository.UserRepository, cfg *config.Config) (bool, error) {
	email := strings.TrimSpace(cfg.AdminEmail)

	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return false, fmt.Errorf("error checking account %s: %w", email, err)
	}
	if existing != nil {
		return false, nil
	}

	admin, err := service.NewPasswordAccount(email, cfg.AdminPassword, cfg.AdminName, model.RoleAdmin)
	if err != nil {
		return false, err
	}
	if err := repo.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("error creating account %s: %w", email, err)
	}
	return true, nil
}
