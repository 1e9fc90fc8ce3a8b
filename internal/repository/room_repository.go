package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelstay/internal/model"
)

// RoomRepository defines room persistence operations.
type RoomRepository interface {
	List(ctx context.Context) ([]model.Room, error)
	FindByID(ctx context.Context, id string) (*model.Room, error)
	// SetAvailability flips available to the given value only if it currently
	// holds the opposite. It reports whether the row changed.
	SetAvailability(ctx context.Context, id string, available bool) (bool, error)
	// Upsert inserts or refreshes rooms without touching live availability.
	Upsert(ctx context.Context, rooms []model.Room) error
	Count(ctx context.Context) (int64, error)
}

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new room repository.
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) List(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := r.db.WithContext(ctx).Order("number").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) SetAvailability(ctx context.Context, id string, available bool) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Room{}).
		Where("id = ? AND available = ?", id, !available).
		Update("available", available)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *roomRepository) Upsert(ctx context.Context, rooms []model.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"number", "type", "price", "capacity", "amenities"}),
	}).Create(&rooms).Error
}

func (r *roomRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Room{}).Count(&n).Error
	return n, err
}
