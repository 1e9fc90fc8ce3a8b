package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hotelstay/internal/auth"
	"hotelstay/internal/cache"
	"hotelstay/internal/db"
	apperrors "hotelstay/internal/errors"
	"hotelstay/internal/model"
	"hotelstay/internal/repository"
	"hotelstay/internal/seed"
)

type testEnv struct {
	orders   OrderService
	catalog  CatalogService
	bookings BookingService
	auth     AuthService
	jwt      *auth.JWTService
	rooms    repository.RoomRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, func(repository.UserRepository) Authenticator { return NewDemoAuthenticator() })
}

// newAccountsTestEnv authenticates against stored accounts instead of demo rules.
func newAccountsTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, NewAccountAuthenticator)
}

func newTestEnvWith(t *testing.T, authenticator func(repository.UserRepository) Authenticator) *testEnv {
	t.Helper()
	gormDB, err := db.NewMemorySQLite()
	require.NoError(t, err)

	log := zap.NewNop()
	store := cache.NewMemory()
	catalogRepo := repository.NewCatalogRepository(gormDB)
	roomRepo := repository.NewRoomRepository(gormDB)
	seeder := seed.NewSeeder(catalogRepo, roomRepo)
	_, err = seeder.Apply(context.Background(), seed.Default())
	require.NoError(t, err)

	jwtService := auth.NewJWTService("test-secret", time.Hour)
	authService := NewAuthService(authenticator(repository.NewUserRepository(gormDB)), jwtService, auth.NewSessionStore(store, time.Hour), log)
	catalogService := NewCatalogService(catalogRepo, seeder, store, log)

	return &testEnv{
		orders:   NewOrderService(repository.NewOrderRepository(gormDB), catalogService, log),
		catalog:  catalogService,
		bookings: NewBookingService(roomRepo, authService, log),
		auth:     authService,
		jwt:      jwtService,
		rooms:    roomRepo,
	}
}

// login returns the session id and user.
func (e *testEnv) login(t *testing.T, email string) (string, *model.User) {
	t.Helper()
	token, user, err := e.auth.Login(context.Background(), email, "pw", "")
	require.NoError(t, err)
	return sessionIDFromToken(t, e.jwt, token), user
}

func lineItems(items ...model.OrderItem) []model.OrderItem { return items }

func item(name string, qty int, price int64) model.OrderItem {
	return model.OrderItem{Name: name, Quantity: qty, Price: decimal.NewFromInt(price)}
}

func TestOrderService_AliceScenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, alice := env.login(t, "alice@hotel.com")
	_, admin := env.login(t, "admin@hotel.com")
	assert.Equal(t, model.RoleGuest, alice.Role)
	assert.Equal(t, "305", alice.Room())

	order, err := env.orders.PlaceOrder(ctx, alice, "2", []CartLine{
		{FoodItemID: "3", Quantity: 2},
		{FoodItemID: "5", Quantity: 1},
	})
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(820)), order.Total.String())
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, "Spice Garden", order.RestaurantName)
	assert.Equal(t, "305", order.RoomNumber)

	for _, next := range []model.OrderStatus{model.OrderStatusPreparing, model.OrderStatusOnTheWay, model.OrderStatusDelivered} {
		order, err = env.orders.Advance(ctx, admin, order.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, order.Status)
	}

	mine, err := env.orders.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, model.OrderStatusDelivered, mine[0].Status)
	assert.True(t, mine[0].Total.Equal(decimal.NewFromInt(820)))

	history, err := env.orders.History(ctx, alice, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, model.OrderStatusDelivered, history[3].ToStatus)
	assert.Equal(t, model.RoleAdmin, history[3].Role)

	_, err = env.orders.Cancel(ctx, alice, order.ID)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))

	summary, err := env.orders.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Done)
	assert.True(t, summary.Revenue.Equal(decimal.NewFromInt(820)))
}

func TestOrderService_CreateOrderTotals(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	userID := uuid.New()

	tests := []struct {
		name  string
		items []model.OrderItem
		want  string
	}{
		{"single", lineItems(item("Tea", 1, 40)), "40"},
		{"mixed", lineItems(item("Steak", 2, 450), item("Salad", 3, 280)), "1740"},
		{"fractional", lineItems(model.OrderItem{Name: "Soup", Quantity: 3, Price: decimal.RequireFromString("19.99")}), "59.97"},
		{"free", lineItems(item("Water", 2, 0)), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := env.orders.CreateOrder(ctx, userID, "Quick Bites", tt.items, "101")
			require.NoError(t, err)
			assert.True(t, order.Total.Equal(decimal.RequireFromString(tt.want)), order.Total.String())
			assert.True(t, order.Total.Equal(model.SumItems(order.Items)))

			stored, err := env.orders.Get(ctx, order.ID)
			require.NoError(t, err)
			assert.True(t, stored.Total.Equal(order.Total))
		})
	}
}

func TestOrderService_CreateOrderRejects(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	userID := uuid.New()

	_, err := env.orders.CreateOrder(ctx, userID, "Quick Bites", nil, "101")
	assert.Equal(t, apperrors.ErrEmptyCart, err)

	_, err = env.orders.CreateOrder(ctx, userID, "Quick Bites", lineItems(item("Fries", 0, 120), item("Refund", 1, -5)), "101")
	inputErr := apperrors.AsInputError(err)
	require.NotNil(t, inputErr)
	assert.Contains(t, inputErr.Fields(), "items[0].quantity")
	assert.Contains(t, inputErr.Fields(), "items[1].price")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))

	all, err := env.orders.ListAll(ctx, model.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOrderService_ListForUserIsOrderedSubset(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice, bob := uuid.New(), uuid.New()

	for _, uid := range []uuid.UUID{alice, bob, alice, bob, alice} {
		_, err := env.orders.CreateOrder(ctx, uid, "Quick Bites", lineItems(item("Fries", 1, 120)), "101")
		require.NoError(t, err)
	}

	all, err := env.orders.ListAll(ctx, model.OrderFilter{})
	require.NoError(t, err)
	var want []uint
	for _, o := range all {
		if o.UserID == alice {
			want = append(want, o.ID)
		}
	}

	mine, err := env.orders.ListForUser(ctx, alice)
	require.NoError(t, err)
	var got []uint
	for _, o := range mine {
		got = append(got, o.ID)
	}
	assert.Equal(t, want, got)
	assert.Len(t, got, 3)
}

func TestOrderService_AdvanceMissingOrder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, admin := env.login(t, "admin@hotel.com")

	created, err := env.orders.CreateOrder(ctx, uuid.New(), "Quick Bites", lineItems(item("Fries", 1, 120)), "101")
	require.NoError(t, err)

	_, err = env.orders.Advance(ctx, admin, created.ID+42, model.OrderStatusPreparing)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	all, err := env.orders.ListAll(ctx, model.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, model.OrderStatusPending, all[0].Status)
}

func TestOrderService_TransitionRules(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, alice := env.login(t, "alice@hotel.com")
	_, bob := env.login(t, "bob@hotel.com")
	_, admin := env.login(t, "admin@hotel.com")

	newOrder := func() *model.Order {
		o, err := env.orders.CreateOrder(ctx, alice.ID, "Quick Bites", lineItems(item("Fries", 1, 120)), "305")
		require.NoError(t, err)
		return o
	}

	t.Run("cancelled order cannot be revived", func(t *testing.T) {
		o := newOrder()
		_, err := env.orders.Advance(ctx, admin, o.ID, model.OrderStatusCancelled)
		require.NoError(t, err)

		_, err = env.orders.Advance(ctx, admin, o.ID, model.OrderStatusPreparing)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidTransition))

		got, err := env.orders.Get(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusCancelled, got.Status)
	})

	t.Run("cancelling twice is rejected", func(t *testing.T) {
		o := newOrder()
		_, err := env.orders.Cancel(ctx, alice, o.ID)
		require.NoError(t, err)
		_, err = env.orders.Cancel(ctx, alice, o.ID)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
	})

	t.Run("guest cancels while on the way", func(t *testing.T) {
		o := newOrder()
		_, err := env.orders.Advance(ctx, admin, o.ID, model.OrderStatusPreparing)
		require.NoError(t, err)
		_, err = env.orders.Advance(ctx, admin, o.ID, model.OrderStatusOnTheWay)
		require.NoError(t, err)
		got, err := env.orders.Cancel(ctx, alice, o.ID)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusCancelled, got.Status)
	})

	t.Run("other guests cannot cancel", func(t *testing.T) {
		o := newOrder()
		_, err := env.orders.Cancel(ctx, bob, o.ID)
		assert.Equal(t, apperrors.ErrNotOrderOwner, err)
		_, err = env.orders.History(ctx, bob, o.ID)
		assert.Equal(t, apperrors.ErrNotOrderOwner, err)
	})

	t.Run("guest cannot advance", func(t *testing.T) {
		o := newOrder()
		_, err := env.orders.Advance(ctx, alice, o.ID, model.OrderStatusPreparing)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
	})

	t.Run("admin cannot skip ahead", func(t *testing.T) {
		o := newOrder()
		_, err := env.orders.Advance(ctx, admin, o.ID, model.OrderStatusDelivered)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
	})
}

func TestOrderService_ConcurrentAdvance(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, admin := env.login(t, "admin@hotel.com")

	o, err := env.orders.CreateOrder(ctx, uuid.New(), "Quick Bites", lineItems(item("Fries", 1, 120)), "101")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for _, next := range []model.OrderStatus{model.OrderStatusPreparing, model.OrderStatusCancelled} {
		wg.Add(1)
		go func(next model.OrderStatus) {
			defer wg.Done()
			_, err := env.orders.Advance(ctx, admin, o.ID, next)
			results <- err
		}(next)
	}
	wg.Wait()
	close(results)

	var ok, rejected int
	for err := range results {
		if err == nil {
			ok++
		} else {
			assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
			rejected++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rejected)

	history, err := env.orders.History(ctx, admin, o.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestOrderService_TerminalOrdersDropTheirLock(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, admin := env.login(t, "admin@hotel.com")
	svc := env.orders.(*orderService)

	o, err := env.orders.CreateOrder(ctx, uuid.New(), "Quick Bites", lineItems(item("Fries", 1, 120)), "101")
	require.NoError(t, err)

	_, err = env.orders.Advance(ctx, admin, o.ID, model.OrderStatusPreparing)
	require.NoError(t, err)
	_, held := svc.orderMutexes.Load(o.ID)
	assert.True(t, held)

	_, err = env.orders.Advance(ctx, admin, o.ID, model.OrderStatusOnTheWay)
	require.NoError(t, err)
	_, err = env.orders.Advance(ctx, admin, o.ID, model.OrderStatusDelivered)
	require.NoError(t, err)
	_, held = svc.orderMutexes.Load(o.ID)
	assert.False(t, held)

	// Still rejected after the lock is gone.
	_, err = env.orders.Advance(ctx, admin, o.ID, model.OrderStatusCancelled)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
}

func TestOrderService_PlaceOrderGuards(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, admin := env.login(t, "admin@hotel.com")
	_, alice := env.login(t, "alice@hotel.com")

	_, err := env.orders.PlaceOrder(ctx, admin, "2", []CartLine{{FoodItemID: "3", Quantity: 1}})
	assert.Equal(t, apperrors.ErrNotGuest, err)

	_, err = env.orders.PlaceOrder(ctx, alice, "2", nil)
	assert.Equal(t, apperrors.ErrEmptyCart, err)

	_, err = env.orders.PlaceOrder(ctx, alice, "2", []CartLine{{FoodItemID: "8", Quantity: 1}})
	assert.True(t, errors.Is(err, apperrors.ErrForeignItem))

	_, err = env.orders.PlaceOrder(ctx, alice, "2", []CartLine{{FoodItemID: "99", Quantity: 1}})
	assert.True(t, errors.Is(err, apperrors.ErrFoodItemNotFound))

	_, err = env.orders.PlaceOrder(ctx, alice, "42", []CartLine{{FoodItemID: "3", Quantity: 1}})
	assert.Equal(t, apperrors.ErrRestaurantNotFound, err)

	unbooked := *alice
	unbooked.ClearBooking()
	_, err = env.orders.PlaceOrder(ctx, &unbooked, "2", []CartLine{{FoodItemID: "3", Quantity: 1}})
	assert.Equal(t, apperrors.ErrNoBooking, err)
}

func TestOrderService_SnapshotsSurviveCatalogChanges(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, alice := env.login(t, "alice@hotel.com")

	order, err := env.orders.PlaceOrder(ctx, alice, "4", []CartLine{{FoodItemID: "9", Quantity: 2}})
	require.NoError(t, err)

	c := seed.Default()
	for i := range c.FoodItems {
		if c.FoodItems[i].ID == "9" {
			c.FoodItems[i].Name = "Loaded Fries"
			c.FoodItems[i].Price = decimal.NewFromInt(999)
		}
	}
	_, err = env.catalog.Seed(ctx, c)
	require.NoError(t, err)

	got, err := env.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "French Fries", got.Items[0].Name)
	assert.True(t, got.Items[0].Price.Equal(decimal.NewFromInt(120)))
	assert.True(t, got.Total.Equal(decimal.NewFromInt(240)))
}

func TestOrderService_Summary(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, admin := env.login(t, "admin@hotel.com")
	user := uuid.New()

	var ids []uint
	for i := 0; i < 4; i++ {
		o, err := env.orders.CreateOrder(ctx, user, "Quick Bites", lineItems(item("Pizza", 1, 350)), "101")
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}
	_, err := env.orders.Advance(ctx, admin, ids[1], model.OrderStatusPreparing)
	require.NoError(t, err)
	_, err = env.orders.Advance(ctx, admin, ids[2], model.OrderStatusCancelled)
	require.NoError(t, err)
	for _, next := range []model.OrderStatus{model.OrderStatusPreparing, model.OrderStatusOnTheWay, model.OrderStatusDelivered} {
		_, err = env.orders.Advance(ctx, admin, ids[3], next)
		require.NoError(t, err)
	}

	summary, err := env.orders.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Pending)
	assert.Equal(t, 1, summary.Active)
	assert.Equal(t, 1, summary.Done)
	assert.Equal(t, 1, summary.Counts[model.OrderStatusCancelled])
	assert.Equal(t, 0, summary.Counts[model.OrderStatusOnTheWay])
	assert.True(t, summary.Revenue.Equal(decimal.NewFromInt(350)))

	pending := model.OrderStatusPending
	filtered, err := env.orders.ListAll(ctx, model.OrderFilter{Status: &pending})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, ids[0], filtered[0].ID)
}
