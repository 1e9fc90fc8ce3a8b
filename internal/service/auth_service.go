package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hotelstay/internal/auth"
	"hotelstay/internal/errors"
	"hotelstay/internal/model"
)

// AuthService opens, reads, updates and closes sessions.
type AuthService interface {
	Login(ctx context.Context, email, password, roomNumber string) (token string, user *model.User, err error)
	Signup(ctx context.Context, email, password, name string) (token string, user *model.User, err error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, sessionID string) (*model.User, error)
	UpdateUser(ctx context.Context, sessionID string, patch model.UserPatch) (*model.User, error)
	// Account returns the persisted account behind a session user, or nil in demo mode.
	Account(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type authService struct {
	authenticator Authenticator
	jwtService    *auth.JWTService
	sessions      auth.SessionStoreInterface
	log           *zap.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator Authenticator, jwtService *auth.JWTService, sessions auth.SessionStoreInterface, log *zap.Logger) AuthService {
	return &authService{
		authenticator: authenticator,
		jwtService:    jwtService,
		sessions:      sessions,
		log:           log,
	}
}

// Login verifies credentials and opens a new session for the resulting user.
func (s *authService) Login(ctx context.Context, email, password, roomNumber string) (string, *model.User, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password, roomNumber)
	if err != nil {
		return "", nil, err
	}
	return s.open(ctx, user)
}

// Signup registers a guest without a booking and opens a session for it.
func (s *authService) Signup(ctx context.Context, email, password, name string) (string, *model.User, error) {
	inputErr := errors.NewInputError()
	if email == "" {
		inputErr.Add("email", "is required")
	}
	if password == "" {
		inputErr.Add("password", "is required")
	}
	if name == "" {
		inputErr.Add("name", "is required")
	}
	if !inputErr.Empty() {
		return "", nil, inputErr
	}

	user, err := s.authenticator.Register(ctx, email, password, name)
	if err != nil {
		return "", nil, err
	}
	return s.open(ctx, user)
}

func (s *authService) open(ctx context.Context, user *model.User) (string, *model.User, error) {
	sessionID := auth.NewSessionID()
	token, err := s.jwtService.GenerateToken(user, sessionID)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	if err := s.sessions.Put(ctx, sessionID, user); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	s.log.Info("session opened",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))
	return token, user, nil
}

// Logout deletes the session record.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.log.Info("session closed", zap.String("session_id", sessionID))
	return nil
}

// CurrentUser returns the session record or ErrNoSession.
func (s *authService) CurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	return s.sessions.Get(ctx, sessionID)
}

// UpdateUser merges patch onto the session record and persists the result.
func (s *authService) UpdateUser(ctx context.Context, sessionID string, patch model.UserPatch) (*model.User, error) {
	user, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if patch.TouchesBooking() && !user.IsGuest() {
		return nil, errors.ErrBookingFieldsAdmin
	}

	patch.Apply(user)

	if err := s.authenticator.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := s.sessions.Put(ctx, sessionID, user); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return user, nil
}

func (s *authService) Account(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.authenticator.Load(ctx, userID)
}
