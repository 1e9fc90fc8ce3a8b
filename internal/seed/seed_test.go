package seed

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelstay/internal/db"
	apperrors "hotelstay/internal/errors"
	"hotelstay/internal/model"
	"hotelstay/internal/repository"
)

func TestDefault_IsValid(t *testing.T) {
	c := Default()
	require.NoError(t, Validate(c))
	assert.Len(t, c.Restaurants, 4)
	assert.Len(t, c.FoodItems, 10)
	assert.Len(t, c.Rooms, 4)

	for _, room := range c.Rooms {
		if room.Number == "305" {
			assert.False(t, room.Available)
		}
	}
}

func TestValidate_Rejects(t *testing.T) {
	c := Catalog{
		Restaurants: []model.Restaurant{{ID: "1", Name: "Spice Garden"}},
		FoodItems: []model.FoodItem{
			{ID: "1", RestaurantID: "9", Name: "Ghost", Price: decimal.NewFromInt(10)},
			{ID: "2", RestaurantID: "1", Name: "Refund", Price: decimal.NewFromInt(-1)},
		},
		Rooms: []model.Room{{ID: "1", Number: "101"}, {ID: "2", Number: "101"}},
	}

	err := Validate(c)
	inputErr := apperrors.AsInputError(err)
	require.NotNil(t, inputErr)
	assert.Contains(t, inputErr.Fields(), "foodItems[0]")
	assert.Contains(t, inputErr.Fields(), "foodItems[1]")
	assert.Contains(t, inputErr.Fields(), "rooms[1]")
}

func TestSeeder_ApplyIfEmpty(t *testing.T) {
	ctx := context.Background()
	gormDB, err := db.NewMemorySQLite()
	require.NoError(t, err)

	catalogRepo := repository.NewCatalogRepository(gormDB)
	roomRepo := repository.NewRoomRepository(gormDB)
	seeder := NewSeeder(catalogRepo, roomRepo)

	applied, err := seeder.ApplyIfEmpty(ctx, Default())
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = seeder.ApplyIfEmpty(ctx, Default())
	require.NoError(t, err)
	assert.False(t, applied)

	menu, err := catalogRepo.ListFoodItems(ctx, "2")
	require.NoError(t, err)
	assert.Len(t, menu, 3)

	n, err := roomRepo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
}
