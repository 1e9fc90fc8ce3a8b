package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotelstay/internal/auth"
	"hotelstay/internal/cache"
	apperrors "hotelstay/internal/errors"
	"hotelstay/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockSessionStore is a mock implementation of SessionStoreInterface.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Put(ctx context.Context, sessionID string, user *model.User) error {
	args := m.Called(ctx, sessionID, user)
	return args.Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, sessionID string) (*model.User, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func newMemorySessions() *auth.SessionStore {
	return auth.NewSessionStore(cache.NewMemory(), time.Hour)
}

func sessionIDFromToken(t *testing.T, jwtService *auth.JWTService, token string) string {
	t.Helper()
	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	return claims.SessionID()
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		nameField     string
		setupMock     func(*MockUserRepository, *MockSessionStore)
		expectedError error
	}{
		{
			name:      "successful signup",
			email:     "test@example.com",
			password:  "password123",
			nameField: "Test User",
			setupMock: func(m *MockUserRepository, s *MockSessionStore) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				s.On("Put", mock.Anything, mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:      "user already exists",
			email:     "existing@example.com",
			password:  "password123",
			nameField: "Existing User",
			setupMock: func(m *MockUserRepository, s *MockSessionStore) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockSessions := new(MockSessionStore)
			tt.setupMock(mockRepo, mockSessions)

			jwtService := auth.NewJWTService("test-secret", time.Hour)
			service := NewAuthService(NewAccountAuthenticator(mockRepo), jwtService, mockSessions, zap.NewNop())
			token, user, err := service.Signup(context.Background(), tt.email, tt.password, tt.nameField)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				require.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, model.RoleGuest, user.Role)
				assert.False(t, user.ActiveBooking())
				assert.NotEmpty(t, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
			mockSessions.AssertExpectations(t)
		})
	}
}

func TestAuthService_SignupRequiresFields(t *testing.T) {
	service := NewAuthService(NewDemoAuthenticator(), auth.NewJWTService("s", time.Hour), newMemorySessions(), zap.NewNop())

	_, _, err := service.Signup(context.Background(), "", "", "")
	inputErr := apperrors.AsInputError(err)
	require.NotNil(t, inputErr)
	assert.Len(t, inputErr.Fields(), 3)
}

func TestAuthService_LoginAccounts(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedRole  model.Role
		expectedError error
	}{
		{
			name:     "successful login keeps stored role",
			email:    "admin.fan@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "admin.fan@example.com").Return(&model.User{
					ID:           uuid.New(),
					Email:        "admin.fan@example.com",
					Role:         model.RoleGuest,
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedRole: model.RoleGuest,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "nope",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "account not found",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:          "empty password",
			email:         "test@example.com",
			password:      "",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret", time.Hour)
			service := NewAuthService(NewAccountAuthenticator(mockRepo), jwtService, newMemorySessions(), zap.NewNop())

			token, user, err := service.Login(context.Background(), tt.email, tt.password, "")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.True(t, errors.Is(err, apperrors.ErrUnauthenticated))
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.expectedRole, user.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_DemoLogin(t *testing.T) {
	ctx := context.Background()
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	service := NewAuthService(NewDemoAuthenticator(), jwtService, newMemorySessions(), zap.NewNop())

	token, guest, err := service.Login(ctx, "alice@hotel.com", "any", "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleGuest, guest.Role)
	assert.Equal(t, "alice", guest.Name)
	assert.True(t, guest.ActiveBooking())
	assert.Equal(t, DefaultRoomNumber, guest.Room())
	assert.Equal(t, StayDuration, guest.CheckOut.Sub(*guest.CheckIn))

	current, err := service.CurrentUser(ctx, sessionIDFromToken(t, jwtService, token))
	require.NoError(t, err)
	assert.Equal(t, "alice@hotel.com", current.Email)
	assert.Equal(t, model.RoleGuest, current.Role)

	// Same email, same identity.
	_, again, err := service.Login(ctx, "alice@hotel.com", "other", "101")
	require.NoError(t, err)
	assert.Equal(t, guest.ID, again.ID)
	assert.Equal(t, "101", again.Room())

	_, admin, err := service.Login(ctx, "admin@hotel.com", "x", "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.Nil(t, admin.HasActiveBooking)
	assert.Nil(t, admin.RoomNumber)
	assert.Nil(t, admin.CheckIn)

	_, _, err = service.Login(ctx, "", "x", "")
	assert.True(t, errors.Is(err, apperrors.ErrUnauthenticated))
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	service := NewAuthService(NewDemoAuthenticator(), jwtService, newMemorySessions(), zap.NewNop())

	tokenA, _, err := service.Login(ctx, "alice@hotel.com", "pw", "")
	require.NoError(t, err)
	tokenB, _, err := service.Login(ctx, "bob@hotel.com", "pw", "")
	require.NoError(t, err)

	sessA := sessionIDFromToken(t, jwtService, tokenA)
	require.NoError(t, service.Logout(ctx, sessA))

	_, err = service.CurrentUser(ctx, sessA)
	assert.True(t, errors.Is(err, apperrors.ErrNoSession))

	bob, err := service.CurrentUser(ctx, sessionIDFromToken(t, jwtService, tokenB))
	require.NoError(t, err)
	assert.Equal(t, "bob@hotel.com", bob.Email)
}

func TestAuthService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	service := NewAuthService(NewDemoAuthenticator(), jwtService, newMemorySessions(), zap.NewNop())

	token, _, err := service.Login(ctx, "alice@hotel.com", "pw", "")
	require.NoError(t, err)
	sess := sessionIDFromToken(t, jwtService, token)

	name, phone := "Alice Liddell", "+1 555 0100"
	updated, err := service.UpdateUser(ctx, sess, model.UserPatch{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)
	assert.True(t, updated.ActiveBooking())

	empty := ""
	updated, err = service.UpdateUser(ctx, sess, model.UserPatch{Phone: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.Phone)

	stored, err := service.CurrentUser(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, name, stored.Name)

	_, err = service.UpdateUser(ctx, "missing", model.UserPatch{Name: &name})
	assert.True(t, errors.Is(err, apperrors.ErrUnauthenticated))
}

func TestAuthService_UpdateUserRejectsAdminBooking(t *testing.T) {
	ctx := context.Background()
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	service := NewAuthService(NewDemoAuthenticator(), jwtService, newMemorySessions(), zap.NewNop())

	token, _, err := service.Login(ctx, "admin@hotel.com", "pw", "")
	require.NoError(t, err)

	room := "101"
	_, err = service.UpdateUser(ctx, sessionIDFromToken(t, jwtService, token), model.UserPatch{RoomNumber: &room})
	assert.Equal(t, apperrors.ErrBookingFieldsAdmin, err)
}

func TestAccountAuthenticator_SaveKeepsCredentials(t *testing.T) {
	id := uuid.New()
	stored := &model.User{ID: id, Email: "a@hotel.com", Name: "old", Role: model.RoleGuest, PasswordHash: "hash"}

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, id).Return(stored, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.PasswordHash == "hash" && u.Name == "new" && u.Role == model.RoleGuest && u.ReservedRoom() == "2"
	})).Return(nil)

	session := &model.User{ID: id, Email: "a@hotel.com", Name: "new", Role: model.RoleAdmin}
	session.SetBooking("205", time.Now(), time.Now().Add(StayDuration))
	roomID := "2"
	session.BookedRoomID = &roomID
	require.NoError(t, NewAccountAuthenticator(mockRepo).Save(context.Background(), session))

	mockRepo.AssertExpectations(t)
}

func TestAccountAuthenticator_Load(t *testing.T) {
	id := uuid.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, id).Return(&model.User{ID: id, Role: model.RoleGuest}, nil)
	missing := uuid.New()
	mockRepo.On("FindByID", mock.Anything, missing).Return(nil, gorm.ErrRecordNotFound)

	a := NewAccountAuthenticator(mockRepo)
	user, err := a.Load(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)

	_, err = a.Load(context.Background(), missing)
	assert.Equal(t, apperrors.ErrUserNotFound, err)

	user, err = NewDemoAuthenticator().Load(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestDemoUserID_CaseInsensitive(t *testing.T) {
	assert.Equal(t, demoUserID("Alice@Hotel.com"), demoUserID(strings.ToLower("Alice@Hotel.com")))
	assert.NotEqual(t, demoUserID("alice@hotel.com"), demoUserID("bob@hotel.com"))
}
