package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role identifies the kind of actor behind a session.
type Role string

const (
	RoleGuest Role = "guest"
	RoleAdmin Role = "admin"
)

// User is both the persisted account and the session record. The JSON shape is
// the session record format stored under the session key.
type User struct {
	ID               uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Email            string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name             string     `json:"name" gorm:"size:255;not null"`
	Role             Role       `json:"role" gorm:"size:20;not null"`
	PasswordHash     string     `json:"-" gorm:"size:255"` // Never expose in JSON
	Phone            *string    `json:"phone,omitempty" gorm:"size:50"`
	HasActiveBooking *bool      `json:"hasActiveBooking,omitempty"`
	RoomNumber       *string    `json:"roomNumber,omitempty" gorm:"size:20"`
	BookedRoomID     *string    `json:"bookedRoomId,omitempty" gorm:"size:36"`
	CheckIn          *time.Time `json:"checkIn,omitempty"`
	CheckOut         *time.Time `json:"checkOut,omitempty"`
	CreatedAt        time.Time  `json:"-"`
	UpdatedAt        time.Time  `json:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsGuest reports whether the user is a hotel guest.
func (u *User) IsGuest() bool {
	return u.Role == RoleGuest
}

// IsAdmin reports whether the user is staff.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ActiveBooking reports whether the guest currently holds a room.
func (u *User) ActiveBooking() bool {
	return u.HasActiveBooking != nil && *u.HasActiveBooking
}

// ReservedRoom returns the id of the catalog room held for this guest, or "". Default
// demo bookings name a room number without reserving it.
func (u *User) ReservedRoom() string {
	if u.BookedRoomID == nil {
		return ""
	}
	return *u.BookedRoomID
}

// Room returns the booked room number, or "" when none is set.
func (u *User) Room() string {
	if u.RoomNumber == nil {
		return ""
	}
	return *u.RoomNumber
}

// SetBooking marks the guest as staying in roomNumber between checkIn and checkOut.
func (u *User) SetBooking(roomNumber string, checkIn, checkOut time.Time) {
	active := true
	u.HasActiveBooking = &active
	u.RoomNumber = &roomNumber
	u.CheckIn = &checkIn
	u.CheckOut = &checkOut
}

// ClearBooking removes every booking field except the explicit false flag.
func (u *User) ClearBooking() {
	inactive := false
	u.HasActiveBooking = &inactive
	u.RoomNumber = nil
	u.BookedRoomID = nil
	u.CheckIn = nil
	u.CheckOut = nil
}

// UserPatch carries the fields of a partial session update. Nil fields are left untouched.
type UserPatch struct {
	// ClearBooking drops every booking field before the others are applied.
	ClearBooking     bool
	Name             *string
	Phone            *string
	HasActiveBooking *bool
	RoomNumber       *string
	BookedRoomID     *string
	CheckIn          *time.Time
	CheckOut         *time.Time
}

// TouchesBooking reports whether the patch sets any booking field.
func (p UserPatch) TouchesBooking() bool {
	return p.ClearBooking || p.HasActiveBooking != nil || p.RoomNumber != nil || p.BookedRoomID != nil || p.CheckIn != nil || p.CheckOut != nil
}

// Apply merges the patch onto u. An empty phone clears it.
func (p UserPatch) Apply(u *User) {
	if p.ClearBooking {
		u.ClearBooking()
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		if *p.Phone == "" {
			u.Phone = nil
		} else {
			phone := *p.Phone
			u.Phone = &phone
		}
	}
	if p.HasActiveBooking != nil {
		v := *p.HasActiveBooking
		u.HasActiveBooking = &v
	}
	if p.RoomNumber != nil {
		v := *p.RoomNumber
		u.RoomNumber = &v
	}
	if p.BookedRoomID != nil {
		v := *p.BookedRoomID
		u.BookedRoomID = &v
	}
	if p.CheckIn != nil {
		v := *p.CheckIn
		u.CheckIn = &v
	}
	if p.CheckOut != nil {
		v := *p.CheckOut
		u.CheckOut = &v
	}
}
