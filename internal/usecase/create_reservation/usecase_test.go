package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FoodMap-ReservationService/internal/domain"
	"github.com/m04kA/FoodMap-ReservationService/internal/integrations/menuservice"
)

// Фейки для зависимостей use case

type fakeReservationRepo struct {
	created *domain.Reservation
	err     error
}

func (f *fakeReservationRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	created := *r
	created.ID = 42
	created.CreatedAt = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

type fakeMenuClient struct {
	restaurant    *menuservice.Restaurant
	restaurantErr error
	menuItems     []menuservice.MenuItem
	menuErr       error
}

func (f *fakeMenuClient) GetRestaurant(_ context.Context, _ int64) (*menuservice.Restaurant, error) {
	return f.restaurant, f.restaurantErr
}

func (f *fakeMenuClient) GetMenuItems(_ context.Context, _ int64) ([]menuservice.MenuItem, error) {
	return f.menuItems, f.menuErr
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeReservationRepo, menu *fakeMenuClient, now time.Time) *UseCase {
	uc := NewUseCase(repo, menu, &fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func TestExecute(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	restaurant := &menuservice.Restaurant{
		ID:       1,
		Name:     "Quan Ngon",
		Currency: "VND",
		OwnerIDs: []int64{77},
		IsActive: true,
	}
	menu := []menuservice.MenuItem{
		{ID: 100, RestaurantID: 1, Name: "Pho Bo", Price: 50000, IsAvailable: true},
		{ID: 101, RestaurantID: 1, Name: "Goi Cuon", Price: 30000, IsAvailable: true},
	}

	t.Run("creates pending reservation with denormalized items", func(t *testing.T) {
		repo := &fakeReservationRepo{}
		uc := newTestUseCase(repo, &fakeMenuClient{restaurant: restaurant, menuItems: menu}, now)

		resp, err := uc.Execute(context.Background(), validRequest(now))
		require.NoError(t, err)

		assert.Equal(t, int64(42), resp.ID)
		assert.Equal(t, string(domain.StatusPending), resp.Status)
		assert.Equal(t, "VND", resp.DepositCurrency)
		assert.Nil(t, resp.DepositPercent)
		assert.False(t, resp.IsDepositPaid)

		require.Len(t, resp.Items, 2)
		assert.Equal(t, "Pho Bo", resp.Items[0].Name)
		assert.Equal(t, 50000.0, resp.Items[0].UnitPrice)
		// 50000*1 + 30000*2
		assert.Equal(t, 110000.0, resp.TotalAmount)

		require.NotNil(t, repo.created)
		assert.Contains(t, repo.created.Code, "R-")
	})

	t.Run("restaurant not found", func(t *testing.T) {
		uc := newTestUseCase(&fakeReservationRepo{}, &fakeMenuClient{restaurantErr: menuservice.ErrRestaurantNotFound}, now)

		_, err := uc.Execute(context.Background(), validRequest(now))
		assert.ErrorIs(t, err, ErrRestaurantNotFound)
	})

	t.Run("inactive restaurant rejected", func(t *testing.T) {
		inactive := *restaurant
		inactive.IsActive = false
		uc := newTestUseCase(&fakeReservationRepo{}, &fakeMenuClient{restaurant: &inactive, menuItems: menu}, now)

		_, err := uc.Execute(context.Background(), validRequest(now))
		assert.ErrorIs(t, err, ErrRestaurantInactive)
	})

	t.Run("unknown menu item rejected before persisting", func(t *testing.T) {
		repo := &fakeReservationRepo{}
		uc := newTestUseCase(repo, &fakeMenuClient{restaurant: restaurant, menuItems: menu}, now)

		req := validRequest(now)
		req.Items = append(req.Items, RequestItem{MenuItemID: 999, Quantity: 1})

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrMenuItemNotFound)
		assert.Nil(t, repo.created)
	})

	t.Run("validation failure skips all external calls", func(t *testing.T) {
		repo := &fakeReservationRepo{}
		uc := newTestUseCase(repo, &fakeMenuClient{restaurant: restaurant, menuItems: menu}, now)

		req := validRequest(now)
		req.Items = nil

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrEmptyItems)
		assert.Nil(t, repo.created)
	})

	t.Run("repository failure wrapped as internal", func(t *testing.T) {
		repo := &fakeReservationRepo{err: assert.AnError}
		uc := newTestUseCase(repo, &fakeMenuClient{restaurant: restaurant, menuItems: menu}, now)

		_, err := uc.Execute(context.Background(), validRequest(now))
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("empty restaurant currency falls back to default", func(t *testing.T) {
		noCurrency := *restaurant
		noCurrency.Currency = ""
		repo := &fakeReservationRepo{}
		uc := newTestUseCase(repo, &fakeMenuClient{restaurant: &noCurrency, menuItems: menu}, now)

		resp, err := uc.Execute(context.Background(), validRequest(now))
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultCurrency, resp.DepositCurrency)
	})
}
