package model

import "github.com/shopspring/decimal"

// Room is a bookable hotel room.
type Room struct {
	ID        string          `json:"id" gorm:"size:36;primaryKey"`
	Number    string          `json:"number" gorm:"size:20;uniqueIndex;not null"`
	Type      string          `json:"type" gorm:"size:100;not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	Capacity  int             `json:"capacity" gorm:"not null"`
	Amenities []string        `json:"amenities" gorm:"type:text;serializer:json"`
	Available bool            `json:"available" gorm:"not null"`
}

// Restaurant is an in-house kitchen that delivers to rooms.
type Restaurant struct {
	ID           string  `json:"id" gorm:"size:36;primaryKey"`
	Name         string  `json:"name" gorm:"size:255;not null"`
	Cuisine      string  `json:"cuisine" gorm:"size:100"`
	Rating       float64 `json:"rating"`
	DeliveryTime string  `json:"deliveryTime" gorm:"size:50"`
}

// FoodItem is a menu entry of a restaurant.
type FoodItem struct {
	ID           string          `json:"id" gorm:"size:36;primaryKey"`
	RestaurantID string          `json:"restaurantId" gorm:"size:36;not null;index"`
	Name         string          `json:"name" gorm:"size:255;not null"`
	Description  string          `json:"description" gorm:"type:text"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	Category     string          `json:"category" gorm:"size:100"`
	Veg          bool            `json:"veg"`
	Rating       float64         `json:"rating"`
}
