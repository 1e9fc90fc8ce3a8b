package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hotelstay/internal/errors"
	"hotelstay/internal/model"
	"hotelstay/internal/repository"
)

// BookingService reserves and releases rooms for guest sessions.
type BookingService interface {
	ListRooms(ctx context.Context) ([]model.Room, error)
	BookRoom(ctx context.Context, sessionID, roomID string) (*model.User, error)
	CheckOut(ctx context.Context, sessionID string) (*model.User, error)
}

type bookingService struct {
	rooms repository.RoomRepository
	auth  AuthService
	log   *zap.Logger
	now   func() time.Time
	// Mutex map for per-guest locking
	guestMutexes sync.Map
}

// NewBookingService creates a new booking service.
func NewBookingService(rooms repository.RoomRepository, auth AuthService, log *zap.Logger) BookingService {
	return &bookingService{
		rooms: rooms,
		auth:  auth,
		log:   log,
		now:   time.Now,
	}
}

func (s *bookingService) getMutex(user *model.User) *sync.Mutex {
	value, _ := s.guestMutexes.LoadOrStore(user.ID.String(), &sync.Mutex{})
	return value.(*sync.Mutex)
}

// ListRooms returns the room catalog with live availability.
func (s *bookingService) ListRooms(ctx context.Context) ([]model.Room, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// BookRoom takes the room exclusively and records the stay on the session.
func (s *bookingService) BookRoom(ctx context.Context, sessionID, roomID string) (*model.User, error) {
	user, err := s.auth.CurrentUser(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !user.IsGuest() {
		return nil, errors.ErrNotGuest
	}

	mutex := s.getMutex(user)
	mutex.Lock()
	defer mutex.Unlock()

	// Re-read under the lock.
	user, err = s.auth.CurrentUser(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	holder, err := s.bookingHolder(ctx, user)
	if err != nil {
		return nil, err
	}
	if holder.ActiveBooking() {
		return nil, errors.ErrAlreadyBooked
	}

	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}
	if !room.Available {
		return nil, errors.ErrRoomUnavailable
	}

	reserved, err := s.rooms.SetAvailability(ctx, room.ID, false)
	if err != nil {
		return nil, fmt.Errorf("reserve room: %w", err)
	}
	if !reserved {
		return nil, errors.ErrRoomUnavailable
	}

	now := s.now().UTC()
	checkOut := now.Add(StayDuration)
	active := true
	updated, err := s.auth.UpdateUser(ctx, sessionID, model.UserPatch{
		HasActiveBooking: &active,
		RoomNumber:       &room.Number,
		BookedRoomID:     &room.ID,
		CheckIn:          &now,
		CheckOut:         &checkOut,
	})
	if err != nil {
		if _, relErr := s.rooms.SetAvailability(ctx, room.ID, true); relErr != nil {
			s.log.Error("release room after failed booking", zap.String("room", room.Number), zap.Error(relErr))
		}
		return nil, err
	}

	s.log.Info("room booked",
		zap.String("room", room.Number),
		zap.String("user_id", user.ID.String()))
	return updated, nil
}

// CheckOut clears the guest's booking and makes the reserved room available again.
// A booking that never reserved a catalog room leaves room availability alone.
func (s *bookingService) CheckOut(ctx context.Context, sessionID string) (*model.User, error) {
	user, err := s.auth.CurrentUser(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !user.IsGuest() {
		return nil, errors.ErrNotGuest
	}

	mutex := s.getMutex(user)
	mutex.Lock()
	defer mutex.Unlock()

	user, err = s.auth.CurrentUser(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	holder, err := s.bookingHolder(ctx, user)
	if err != nil {
		return nil, err
	}
	if !holder.ActiveBooking() {
		return nil, errors.ErrNoBooking
	}
	number, roomID := holder.Room(), holder.ReservedRoom()

	updated, err := s.auth.UpdateUser(ctx, sessionID, model.UserPatch{ClearBooking: true})
	if err != nil {
		return nil, err
	}

	if roomID != "" {
		if _, err := s.rooms.SetAvailability(ctx, roomID, true); err != nil {
			s.log.Error("release room on check-out", zap.String("room", number), zap.Error(err))
		}
	}

	s.log.Info("booking cleared",
		zap.String("room", number),
		zap.Bool("room_released", roomID != ""),
		zap.String("user_id", user.ID.String()))
	return updated, nil
}

// bookingHolder returns the record that owns the guest's booking: the stored account
// when there is one, otherwise the session itself.
func (s *bookingService) bookingHolder(ctx context.Context, user *model.User) (*model.User, error) {
	account, err := s.auth.Account(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return user, nil
	}
	return account, nil
}
