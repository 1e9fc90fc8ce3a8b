package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotelstay/internal/errors"
	"hotelstay/internal/model"
	"hotelstay/internal/repository"
)

const bcryptCost = 10

const (
	// DefaultRoomNumber is used when a guest has no room of their own on record.
	DefaultRoomNumber = "305"
	// StayDuration is the length of a booking made at login or through the room list.
	StayDuration = 72 * time.Hour
)

// demoNamespace derives stable user ids from emails in demo mode.
var demoNamespace = uuid.MustParse("6f1c2a1e-8f0b-4c55-9bd4-3a1f7f1a2c90")

// Authenticator resolves credentials into a user record.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password, roomNumber string) (*model.User, error)
	Register(ctx context.Context, email, password, name string) (*model.User, error)
	// Save persists the mutable fields of a session user beyond the session.
	Save(ctx context.Context, user *model.User) error
	// Load returns the stored account of id, or nil when sessions are the only record.
	Load(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// demoAuthenticator accepts any non-empty credentials.
type demoAuthenticator struct {
	now func() time.Time
}

// NewDemoAuthenticator returns an authenticator that never checks passwords. Users whose
// email contains "admin" become staff; everybody else is a guest with a default booking.
func NewDemoAuthenticator() Authenticator {
	return &demoAuthenticator{now: time.Now}
}

func (a *demoAuthenticator) Authenticate(_ context.Context, email, password, roomNumber string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, errors.ErrInvalidCredentials
	}

	user := &model.User{
		ID:    demoUserID(email),
		Email: email,
		Name:  strings.SplitN(email, "@", 2)[0],
		Role:  model.RoleGuest,
	}
	if strings.Contains(email, "admin") {
		user.Role = model.RoleAdmin
		return user, nil
	}

	if roomNumber == "" {
		roomNumber = DefaultRoomNumber
	}
	now := a.now().UTC()
	user.SetBooking(roomNumber, now, now.Add(StayDuration))
	return user, nil
}

func (a *demoAuthenticator) Register(_ context.Context, email, password, name string) (*model.User, error) {
	user := &model.User{
		ID:    demoUserID(email),
		Email: email,
		Name:  name,
		Role:  model.RoleGuest,
	}
	user.ClearBooking()
	return user, nil
}

func (a *demoAuthenticator) Save(context.Context, *model.User) error {
	return nil
}

func (a *demoAuthenticator) Load(context.Context, uuid.UUID) (*model.User, error) {
	return nil, nil
}

func demoUserID(email string) uuid.UUID {
	return uuid.NewSHA1(demoNamespace, []byte(strings.ToLower(email)))
}

// accountAuthenticator verifies bcrypt hashes of stored accounts.
type accountAuthenticator struct {
	repo repository.UserRepository
}

// NewAccountAuthenticator returns an authenticator backed by persisted accounts. The
// role always comes from the account row.
func NewAccountAuthenticator(repo repository.UserRepository) Authenticator {
	return &accountAuthenticator{repo: repo}
}

func (a *accountAuthenticator) Authenticate(ctx context.Context, email, password, _ string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, errors.ErrInvalidCredentials
	}

	user, err := a.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}
	return user, nil
}

func (a *accountAuthenticator) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	existing, err := a.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, errors.ErrUserAlreadyExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check account existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		Role:         model.RoleGuest,
		PasswordHash: string(hashedPassword),
	}
	user.ClearBooking()

	if err := a.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return user, nil
}

// Save copies profile and booking fields onto the stored account. Role, email and
// password are never taken from the session.
func (a *accountAuthenticator) Save(ctx context.Context, user *model.User) error {
	stored, err := a.repo.FindByID(ctx, user.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find account: %w", err)
	}

	stored.Name = user.Name
	stored.Phone = user.Phone
	stored.HasActiveBooking = user.HasActiveBooking
	stored.RoomNumber = user.RoomNumber
	stored.BookedRoomID = user.BookedRoomID
	stored.CheckIn = user.CheckIn
	stored.CheckOut = user.CheckOut

	if err := a.repo.Update(ctx, stored); err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// Load reads the account row. Booking state on the row is shared by every session
// of the account.
func (a *accountAuthenticator) Load(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := a.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return user, nil
}

// NewPasswordAccount builds an account with a hashed password, used to provision staff.
func NewPasswordAccount(email, password, name string, role model.Role) (*model.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: string(hashedPassword),
	}
	if role == model.RoleGuest {
		user.ClearBooking()
	}
	return user, nil
}
