package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelstay/internal/model"
)

// CatalogRepository defines restaurant and menu persistence operations.
type CatalogRepository interface {
	ListRestaurants(ctx context.Context) ([]model.Restaurant, error)
	FindRestaurant(ctx context.Context, id string) (*model.Restaurant, error)
	ListFoodItems(ctx context.Context, restaurantID string) ([]model.FoodItem, error)
	FindFoodItems(ctx context.Context, ids []string) ([]model.FoodItem, error)
	UpsertRestaurants(ctx context.Context, restaurants []model.Restaurant) error
	UpsertFoodItems(ctx context.Context, items []model.FoodItem) error
	CountRestaurants(ctx context.Context) (int64, error)
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	if err := r.db.WithContext(ctx).Order("id").Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *catalogRepository) FindRestaurant(ctx context.Context, id string) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *catalogRepository) ListFoodItems(ctx context.Context, restaurantID string) ([]model.FoodItem, error) {
	var items []model.FoodItem
	if err := r.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).
		Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *catalogRepository) FindFoodItems(ctx context.Context, ids []string) ([]model.FoodItem, error) {
	var items []model.FoodItem
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *catalogRepository) UpsertRestaurants(ctx context.Context, restaurants []model.Restaurant) error {
	if len(restaurants) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&restaurants).Error
}

func (r *catalogRepository) UpsertFoodItems(ctx context.Context, items []model.FoodItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&items).Error
}

func (r *catalogRepository) CountRestaurants(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Restaurant{}).Count(&n).Error
	return n, err
}
