package seed

import (
	"fmt"

	"hotelstay/internal/errors"
)

// Validate checks referential integrity and prices of a catalog.
func Validate(c Catalog) error {
	inputErr := errors.NewInputError()

	restaurants := make(map[string]bool, len(c.Restaurants))
	for i, r := range c.Restaurants {
		if r.ID == "" || r.Name == "" {
			inputErr.Add(fmt.Sprintf("restaurants[%d]", i), "id and name are required")
		}
		restaurants[r.ID] = true
	}
	for i, item := range c.FoodItems {
		field := fmt.Sprintf("foodItems[%d]", i)
		if item.ID == "" || item.Name == "" {
			inputErr.Add(field, "id and name are required")
		}
		if !restaurants[item.RestaurantID] {
			inputErr.Add(field, "unknown restaurant "+item.RestaurantID)
		}
		if item.Price.IsNegative() {
			inputErr.Add(field, "price must not be negative")
		}
	}
	numbers := make(map[string]bool, len(c.Rooms))
	for i, room := range c.Rooms {
		field := fmt.Sprintf("rooms[%d]", i)
		if room.ID == "" || room.Number == "" {
			inputErr.Add(field, "id and number are required")
		}
		if numbers[room.Number] {
			inputErr.Add(field, "duplicate room number "+room.Number)
		}
		numbers[room.Number] = true
		if room.Price.IsNegative() {
			inputErr.Add(field, "price must not be negative")
		}
	}

	if inputErr.Empty() {
		return nil
	}
	return inputErr
}
