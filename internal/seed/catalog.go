// Package seed carries the default hotel catalog and loads it into storage.
package seed

import (
	"github.com/shopspring/decimal"

	"hotelstay/internal/model"
)

// Catalog is a full set of seedable reference data.
type Catalog struct {
	Restaurants []model.Restaurant `json:"restaurants"`
	FoodItems   []model.FoodItem   `json:"foodItems"`
	Rooms       []model.Room       `json:"rooms"`
}

// Default returns the built-in catalog. Room 305 starts occupied.
func Default() Catalog {
	return Catalog{
		Restaurants: []model.Restaurant{
			{ID: "1", Name: "The Grand Kitchen", Cuisine: "Multi-Cuisine", Rating: 4.5, DeliveryTime: "20-30 mins"},
			{ID: "2", Name: "Spice Garden", Cuisine: "Indian", Rating: 4.7, DeliveryTime: "25-35 mins"},
			{ID: "3", Name: "Ocean Breeze", Cuisine: "Seafood", Rating: 4.6, DeliveryTime: "30-40 mins"},
			{ID: "4", Name: "Quick Bites", Cuisine: "Fast Food", Rating: 4.3, DeliveryTime: "15-25 mins"},
		},
		FoodItems: []model.FoodItem{
			food("1", "1", "Grilled Chicken Steak", "Tender grilled chicken with herbs and vegetables", 450, "Main Course", false, 4.5),
			food("2", "1", "Caesar Salad", "Fresh romaine lettuce with caesar dressing", 280, "Salads", true, 4.3),
			food("3", "2", "Butter Chicken", "Creamy tomato-based curry with tender chicken", 380, "Main Course", false, 4.8),
			food("4", "2", "Paneer Tikka Masala", "Cottage cheese in rich spicy gravy", 320, "Main Course", true, 4.6),
			food("5", "2", "Garlic Naan", "Soft bread with garlic and butter", 60, "Breads", true, 4.7),
			food("6", "3", "Grilled Salmon", "Fresh salmon with lemon butter sauce", 650, "Main Course", false, 4.7),
			food("7", "3", "Seafood Platter", "Assorted fresh seafood", 850, "Main Course", false, 4.8),
			food("8", "4", "Chicken Burger", "Juicy chicken patty with fresh veggies", 220, "Burgers", false, 4.4),
			food("9", "4", "French Fries", "Crispy golden fries", 120, "Sides", true, 4.2),
			food("10", "4", "Veg Pizza", "Loaded with fresh vegetables", 350, "Pizza", true, 4.5),
		},
		Rooms: []model.Room{
			{ID: "1", Number: "101", Type: "Deluxe Room", Price: decimal.NewFromInt(3500), Capacity: 2,
				Amenities: []string{"WiFi", "AC", "TV", "Mini Bar"}, Available: true},
			{ID: "2", Number: "205", Type: "Executive Suite", Price: decimal.NewFromInt(6500), Capacity: 3,
				Amenities: []string{"WiFi", "AC", "TV", "Mini Bar", "Balcony", "Kitchen"}, Available: true},
			{ID: "3", Number: "305", Type: "Presidential Suite", Price: decimal.NewFromInt(12000), Capacity: 4,
				Amenities: []string{"WiFi", "AC", "TV", "Mini Bar", "Balcony", "Kitchen", "Jacuzzi", "Living Room"}, Available: false},
			{ID: "4", Number: "102", Type: "Standard Room", Price: decimal.NewFromInt(2500), Capacity: 2,
				Amenities: []string{"WiFi", "AC", "TV"}, Available: true},
		},
	}
}

func food(id, restaurantID, name, description string, price int64, category string, veg bool, rating float64) model.FoodItem {
	return model.FoodItem{
		ID:           id,
		RestaurantID: restaurantID,
		Name:         name,
		Description:  description,
		Price:        decimal.NewFromInt(price),
		Category:     category,
		Veg:          veg,
		Rating:       rating,
	}
}
