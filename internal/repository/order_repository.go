package repository

import (
	"context"

	"gorm.io/gorm"

	"hotelstay/internal/errors"
	"hotelstay/internal/model"
)

// OrderRepository defines ledger persistence operations. Orders are never deleted.
type OrderRepository interface {
	// Create stores the order with its items and the opening history row.
	Create(ctx context.Context, order *model.Order, opened *model.OrderStatusChange) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	// List returns matching orders in insertion order.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	// UpdateStatus moves the order from one status to another. It fails with
	// ErrStaleOrder when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id uint, from, to model.OrderStatus, change *model.OrderStatusChange) error
	History(ctx context.Context, id uint) ([]model.OrderStatusChange, error)
	CountByStatus(ctx context.Context) (map[model.OrderStatus]int, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo OrderRepository) error) error
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order, opened *model.OrderStatusChange) error {
	return r.WithTransaction(ctx, func(ctx context.Context, repo OrderRepository) error {
		tx := repo.(*orderRepository).db
		if err := tx.WithContext(ctx).Create(order).Error; err != nil {
			return err
		}
		opened.OrderID = order.ID
		return tx.WithContext(ctx).Create(opened).Error
	})
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Preload("Items", orderItemsByID).
		Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Preload("Items", orderItemsByID)
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var orders []model.Order
	if err := q.Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, from, to model.OrderStatus, change *model.OrderStatusChange) error {
	return r.WithTransaction(ctx, func(ctx context.Context, repo OrderRepository) error {
		tx := repo.(*orderRepository).db
		res := tx.WithContext(ctx).Model(&model.Order{}).
			Where("id = ? AND status = ?", id, from).
			Update("status", to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.ErrStaleOrder
		}
		change.OrderID = id
		return tx.WithContext(ctx).Create(change).Error
	})
}

func (r *orderRepository) History(ctx context.Context, id uint) ([]model.OrderStatusChange, error) {
	var changes []model.OrderStatusChange
	if err := r.db.WithContext(ctx).Where("order_id = ?", id).
		Order("id").Find(&changes).Error; err != nil {
		return nil, err
	}
	return changes, nil
}

func (r *orderRepository) CountByStatus(ctx context.Context) (map[model.OrderStatus]int, error) {
	var rows []struct {
		Status model.OrderStatus
		Count  int
	}
	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[model.OrderStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// WithTransaction executes fn within a database transaction.
func (r *orderRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo OrderRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &orderRepository{db: tx}
		return fn(ctx, txRepo)
	})
}

func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
