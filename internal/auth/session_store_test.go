package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelstay/internal/cache"
	apperrors "hotelstay/internal/errors"
	"hotelstay/internal/model"
)

func TestSessionStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemory()
	store := NewSessionStore(mem, time.Hour)

	room := "305"
	user := &model.User{ID: uuid.New(), Email: "alice@hotel.com", Name: "alice", Role: model.RoleGuest}
	user.SetBooking(room, time.Now().UTC().Truncate(time.Second), time.Now().UTC().Add(72*time.Hour).Truncate(time.Second))

	require.NoError(t, store.Put(ctx, "abc", user))

	raw, err := mem.Get(ctx, "hotelapp_user:abc")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"roomNumber":"305"`)
	assert.NotContains(t, string(raw), "PasswordHash")

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.Role, got.Role)
	assert.True(t, got.ActiveBooking())
	assert.True(t, user.CheckOut.Equal(*got.CheckOut))

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	assert.True(t, errors.Is(err, apperrors.ErrNoSession))
	assert.True(t, errors.Is(err, apperrors.ErrUnauthenticated))
}

func TestSessionStore_EmptyID(t *testing.T) {
	store := NewSessionStore(cache.NewMemory(), time.Hour)
	_, err := store.Get(context.Background(), "")
	assert.True(t, errors.Is(err, apperrors.ErrNoSession))
}

func TestSessionStore_SessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(cache.NewMemory(), time.Hour)

	require.NoError(t, store.Put(ctx, "a", &model.User{Email: "a@hotel.com"}))
	require.NoError(t, store.Put(ctx, "b", &model.User{Email: "b@hotel.com"}))
	require.NoError(t, store.Delete(ctx, "a"))

	got, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "b@hotel.com", got.Email)
}
