package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an in-room dining order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusOnTheWay  OrderStatus = "on-the-way"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a ledger entry. Restaurant name and line items are snapshots taken when
// the order is placed and do not follow later catalog changes.
type Order struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UserID         uuid.UUID       `json:"userId" gorm:"type:char(36);not null;index"`
	RestaurantName string          `json:"restaurantName" gorm:"size:255;not null"`
	Items          []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	Total          decimal.Decimal `json:"total" gorm:"type:decimal(20,2);not null"`
	Status         OrderStatus     `json:"status" gorm:"type:varchar(20);not null;index"`
	RoomNumber     string          `json:"roomNumber" gorm:"size:20;not null"`
	CreatedAt      time.Time       `json:"orderTime"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID       uint            `json:"-" gorm:"primaryKey"`
	OrderID  uint            `json:"-" gorm:"not null;index"`
	Name     string          `json:"name" gorm:"size:255;not null"`
	Quantity int             `json:"quantity" gorm:"not null"`
	Price    decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
}

// Subtotal is price × quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SumItems returns Σ price × quantity over items.
func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// OrderStatusChange is an audit row written for every status change, including creation.
type OrderStatusChange struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"orderId" gorm:"not null;index"`
	FromStatus OrderStatus `json:"fromStatus,omitempty" gorm:"type:varchar(20)"`
	ToStatus   OrderStatus `json:"toStatus" gorm:"type:varchar(20);not null"`
	ChangedBy  uuid.UUID   `json:"changedBy" gorm:"type:char(36);not null"`
	Role       Role        `json:"role" gorm:"size:20;not null"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// OrderFilter narrows ledger listings.
type OrderFilter struct {
	UserID *uuid.UUID
	Status *OrderStatus
}

// OrderSummary aggregates the ledger for the staff dashboard.
type OrderSummary struct {
	Counts  map[OrderStatus]int `json:"counts"`
	Pending int                 `json:"pending"`
	Active  int                 `json:"active"`
	Done    int                 `json:"delivered"`
	Revenue decimal.Decimal     `json:"revenue"`
}
