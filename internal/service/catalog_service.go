package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hotelstay/internal/cache"
	"hotelstay/internal/errors"
	"hotelstay/internal/model"
	"hotelstay/internal/repository"
	"hotelstay/internal/seed"
)

const (
	catalogCacheTTL     = 5 * time.Minute
	restaurantsCacheKey = "catalog:restaurants"
	menuCacheKeyPrefix  = "catalog:menu:"
)

// CartLine is one requested food item and its quantity.
type CartLine struct {
	FoodItemID string `json:"foodItemId" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

// CatalogService serves restaurants and menus.
type CatalogService interface {
	ListRestaurants(ctx context.Context) ([]model.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*model.Restaurant, error)
	Menu(ctx context.Context, restaurantID string) ([]model.FoodItem, error)
	// ResolveCart turns cart lines into priced order items from one restaurant.
	ResolveCart(ctx context.Context, restaurantID string, lines []CartLine) (*model.Restaurant, []model.OrderItem, error)
	Seed(ctx context.Context, c seed.Catalog) (seed.Result, error)
}

type catalogService struct {
	repo   repository.CatalogRepository
	seeder *seed.Seeder
	cache  cache.Store
	log    *zap.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.CatalogRepository, seeder *seed.Seeder, cache cache.Store, log *zap.Logger) CatalogService {
	return &catalogService{
		repo:   repo,
		seeder: seeder,
		cache:  cache,
		log:    log,
	}
}

func (s *catalogService) menuCacheKey(restaurantID string) string {
	return menuCacheKeyPrefix + restaurantID
}

// ListRestaurants returns every restaurant, cached.
func (s *catalogService) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	if data, _ := s.cache.Get(ctx, restaurantsCacheKey); data != nil {
		var cached []model.Restaurant
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	restaurants, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}

	if payload, err := json.Marshal(restaurants); err == nil {
		_ = s.cache.Set(ctx, restaurantsCacheKey, payload, catalogCacheTTL)
	}
	return restaurants, nil
}

func (s *catalogService) GetRestaurant(ctx context.Context, id string) (*model.Restaurant, error) {
	restaurant, err := s.repo.FindRestaurant(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	return restaurant, nil
}

// Menu returns the food items of a restaurant, cached per restaurant.
func (s *catalogService) Menu(ctx context.Context, restaurantID string) ([]model.FoodItem, error) {
	key := s.menuCacheKey(restaurantID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.FoodItem
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	if _, err := s.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListFoodItems(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list food items: %w", err)
	}

	if payload, err := json.Marshal(items); err == nil {
		_ = s.cache.Set(ctx, key, payload, catalogCacheTTL)
	}
	return items, nil
}

func (s *catalogService) ResolveCart(ctx context.Context, restaurantID string, lines []CartLine) (*model.Restaurant, []model.OrderItem, error) {
	if len(lines) == 0 {
		return nil, nil, errors.ErrEmptyCart
	}

	inputErr := errors.NewInputError()
	ids := make([]string, 0, len(lines))
	for i, line := range lines {
		if line.Quantity <= 0 {
			inputErr.Add(fmt.Sprintf("items[%d].quantity", i), "must be at least 1")
		}
		ids = append(ids, line.FoodItemID)
	}
	if !inputErr.Empty() {
		return nil, nil, inputErr
	}

	restaurant, err := s.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, nil, err
	}

	found, err := s.repo.FindFoodItems(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("find food items: %w", err)
	}
	byID := make(map[string]model.FoodItem, len(found))
	for _, item := range found {
		byID[item.ID] = item
	}

	items := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		food, ok := byID[line.FoodItemID]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", errors.ErrFoodItemNotFound, line.FoodItemID)
		}
		if food.RestaurantID != restaurant.ID {
			return nil, nil, fmt.Errorf("%w: %s", errors.ErrForeignItem, food.Name)
		}
		items = append(items, model.OrderItem{
			Name:     food.Name,
			Quantity: line.Quantity,
			Price:    food.Price,
		})
	}
	return restaurant, items, nil
}

// Seed loads a catalog and drops cached listings.
func (s *catalogService) Seed(ctx context.Context, c seed.Catalog) (seed.Result, error) {
	res, err := s.seeder.Apply(ctx, c)
	if err != nil {
		return seed.Result{}, err
	}

	_ = s.cache.Delete(ctx, restaurantsCacheKey)
	for _, r := range c.Restaurants {
		_ = s.cache.Delete(ctx, s.menuCacheKey(r.ID))
	}
	s.log.Info("catalog seeded",
		zap.Int("restaurants", res.Restaurants),
		zap.Int("food_items", res.FoodItems),
		zap.Int("rooms", res.Rooms))
	return res, nil
}
