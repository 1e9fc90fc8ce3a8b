package seed

import (
	"context"
	"fmt"

	"hotelstay/internal/repository"
)

// Result counts what Apply wrote.
type Result struct {
	Restaurants int `json:"restaurants"`
	FoodItems   int `json:"foodItems"`
	Rooms       int `json:"rooms"`
}

// Seeder writes catalogs through the repositories.
type Seeder struct {
	catalog repository.CatalogRepository
	rooms   repository.RoomRepository
}

// NewSeeder creates a seeder.
func NewSeeder(catalog repository.CatalogRepository, rooms repository.RoomRepository) *Seeder {
	return &Seeder{catalog: catalog, rooms: rooms}
}

// Apply upserts every entry of c. Existing rooms keep their live availability.
func (s *Seeder) Apply(ctx context.Context, c Catalog) (Result, error) {
	if err := Validate(c); err != nil {
		return Result{}, err
	}
	if err := s.catalog.UpsertRestaurants(ctx, c.Restaurants); err != nil {
		return Result{}, fmt.Errorf("seed restaurants: %w", err)
	}
	if err := s.catalog.UpsertFoodItems(ctx, c.FoodItems); err != nil {
		return Result{}, fmt.Errorf("seed food items: %w", err)
	}
	if err := s.rooms.Upsert(ctx, c.Rooms); err != nil {
		return Result{}, fmt.Errorf("seed rooms: %w", err)
	}
	return Result{
		Restaurants: len(c.Restaurants),
		FoodItems:   len(c.FoodItems),
		Rooms:       len(c.Rooms),
	}, nil
}

// ApplyIfEmpty seeds c only when no restaurant exists yet.
func (s *Seeder) ApplyIfEmpty(ctx context.Context, c Catalog) (bool, error) {
	n, err := s.catalog.CountRestaurants(ctx)
	if err != nil {
		return false, fmt.Errorf("count restaurants: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	if _, err := s.Apply(ctx, c); err != nil {
		return false, err
	}
	return true, nil
}
