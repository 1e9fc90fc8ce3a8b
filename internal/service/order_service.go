package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hotelstay/internal/errors"
	"hotelstay/internal/lifecycle"
	"hotelstay/internal/model"
	"hotelstay/internal/repository"
)

// OrderService is the order ledger.
type OrderService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, restaurantName string, items []model.OrderItem, roomNumber string) (*model.Order, error)
	PlaceOrder(ctx context.Context, guest *model.User, restaurantID string, cart []CartLine) (*model.Order, error)
	Advance(ctx context.Context, actor *model.User, orderID uint, next model.OrderStatus) (*model.Order, error)
	Cancel(ctx context.Context, actor *model.User, orderID uint) (*model.Order, error)
	Get(ctx context.Context, id uint) (*model.Order, error)
	ListAll(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	History(ctx context.Context, actor *model.User, id uint) ([]model.OrderStatusChange, error)
	Summary(ctx context.Context) (*model.OrderSummary, error)
}

type orderService struct {
	repo    repository.OrderRepository
	catalog CatalogService
	log     *zap.Logger
	// Mutex map for per-order locking
	orderMutexes sync.Map
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository, catalog CatalogService, log *zap.Logger) OrderService {
	return &orderService{
		repo:    repo,
		catalog: catalog,
		log:     log,
	}
}

func (s *orderService) getMutex(orderID uint) *sync.Mutex {
	value, _ := s.orderMutexes.LoadOrStore(orderID, &sync.Mutex{})
	return value.(*sync.Mutex)
}

// CreateOrder appends a pending order whose total is the sum of its line items.
func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, restaurantName string, items []model.OrderItem, roomNumber string) (*model.Order, error) {
	if len(items) == 0 {
		return nil, errors.ErrEmptyCart
	}

	inputErr := errors.NewInputError()
	if userID == uuid.Nil {
		inputErr.Add("userId", "is required")
	}
	if restaurantName == "" {
		inputErr.Add("restaurantName", "is required")
	}
	if roomNumber == "" {
		inputErr.Add("roomNumber", "is required")
	}
	lines := make([]model.OrderItem, len(items))
	for i, item := range items {
		prefix := "items[" + strconv.Itoa(i) + "]"
		if item.Name == "" {
			inputErr.Add(prefix+".name", "is required")
		}
		if item.Quantity <= 0 {
			inputErr.Add(prefix+".quantity", "must be at least 1")
		}
		if item.Price.IsNegative() {
			inputErr.Add(prefix+".price", "must not be negative")
		}
		lines[i] = model.OrderItem{Name: item.Name, Quantity: item.Quantity, Price: item.Price}
	}
	if !inputErr.Empty() {
		return nil, inputErr
	}

	order := &model.Order{
		UserID:         userID,
		RestaurantName: restaurantName,
		Items:          lines,
		Total:          model.SumItems(lines),
		Status:         model.OrderStatusPending,
		RoomNumber:     roomNumber,
	}
	opened := &model.OrderStatusChange{
		ToStatus:  model.OrderStatusPending,
		ChangedBy: userID,
		Role:      model.RoleGuest,
	}
	if err := s.repo.Create(ctx, order, opened); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.log.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.String("user_id", userID.String()),
		zap.String("total", order.Total.StringFixed(2)))
	return order, nil
}

// PlaceOrder prices a cart from the catalog and records it for a booked guest.
func (s *orderService) PlaceOrder(ctx context.Context, guest *model.User, restaurantID string, cart []CartLine) (*model.Order, error) {
	if !guest.IsGuest() {
		return nil, errors.ErrNotGuest
	}
	if !guest.ActiveBooking() {
		return nil, errors.ErrNoBooking
	}

	restaurant, items, err := s.catalog.ResolveCart(ctx, restaurantID, cart)
	if err != nil {
		return nil, err
	}

	room := guest.Room()
	if room == "" {
		room = DefaultRoomNumber
	}
	return s.CreateOrder(ctx, guest.ID, restaurant.Name, items, room)
}

// Advance moves an order to next if actor may make that transition.
func (s *orderService) Advance(ctx context.Context, actor *model.User, orderID uint, next model.OrderStatus) (*model.Order, error) {
	if !actor.IsGuest() && !actor.IsAdmin() {
		return nil, errors.ErrWrongRole
	}

	mutex := s.getMutex(orderID)
	mutex.Lock()
	defer mutex.Unlock()

	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if actor.IsGuest() && order.UserID != actor.ID {
		return nil, errors.ErrNotOrderOwner
	}
	if err := lifecycle.CanTransition(order.Status, next, actor.Role); err != nil {
		return nil, err
	}

	change := &model.OrderStatusChange{
		FromStatus: order.Status,
		ToStatus:   next,
		ChangedBy:  actor.ID,
		Role:       actor.Role,
	}
	if err := s.repo.UpdateStatus(ctx, orderID, order.Status, next, change); err != nil {
		if err == errors.ErrStaleOrder {
			return nil, err
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if lifecycle.IsTerminal(next) {
		// Terminal orders never change again.
		s.orderMutexes.Delete(orderID)
	}

	s.log.Info("order status changed",
		zap.Uint("order_id", orderID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(next)),
		zap.String("role", string(actor.Role)))
	return s.Get(ctx, orderID)
}

// Cancel is Advance to cancelled.
func (s *orderService) Cancel(ctx context.Context, actor *model.User, orderID uint) (*model.Order, error) {
	return s.Advance(ctx, actor, orderID, model.OrderStatusCancelled)
}

func (s *orderService) Get(ctx context.Context, id uint) (*model.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return order, nil
}

// ListAll returns the ledger in insertion order.
func (s *orderService) ListAll(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ListForUser returns the orders owned by userID in insertion order.
func (s *orderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return s.ListAll(ctx, model.OrderFilter{UserID: &userID})
}

// History returns the status changes of an order to its owner or to staff.
func (s *orderService) History(ctx context.Context, actor *model.User, id uint) ([]model.OrderStatusChange, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && order.UserID != actor.ID {
		return nil, errors.ErrNotOrderOwner
	}

	history, err := s.repo.History(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order history: %w", err)
	}
	return history, nil
}

// Summary counts orders per status and sums delivered revenue.
func (s *orderService) Summary(ctx context.Context) (*model.OrderSummary, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	summary := &model.OrderSummary{
		Counts:  make(map[model.OrderStatus]int),
		Revenue: decimal.Zero,
	}
	for _, st := range lifecycle.Statuses() {
		n := counts[st]
		summary.Counts[st] = n
		switch {
		case st == model.OrderStatusPending:
			summary.Pending += n
		case lifecycle.IsActive(st):
			summary.Active += n
		case st == model.OrderStatusDelivered:
			summary.Done += n
		}
	}

	delivered := model.OrderStatusDelivered
	orders, err := s.repo.List(ctx, model.OrderFilter{Status: &delivered})
	if err != nil {
		return nil, fmt.Errorf("list delivered orders: %w", err)
	}
	for _, o := range orders {
		summary.Revenue = summary.Revenue.Add(o.Total)
	}
	return summary, nil
}
