package request_deposit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FoodMap-ReservationService/internal/domain"
	storage "github.com/m04kA/FoodMap-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/FoodMap-ReservationService/internal/integrations/menuservice"
	"github.com/m04kA/FoodMap-ReservationService/internal/integrations/notifyqueue"
	"github.com/m04kA/FoodMap-ReservationService/pkg/ptr"
)

// Фейки для зависимостей use case

type fakeRepo struct {
	reservation *domain.Reservation
	getErr      error
	casErr      error

	casCalls int
	percent  int
	amount   float64
	currency string
}

func (f *fakeRepo) GetByID(_ context.Context, _ int64) (*domain.Reservation, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	res := *f.reservation
	return &res, nil
}

func (f *fakeRepo) RequestDeposit(_ context.Context, _ int64, from domain.ReservationStatus, percent int, amount float64, currency string) error {
	f.casCalls++
	if f.casErr != nil {
		return f.casErr
	}
	f.percent = percent
	f.amount = amount
	f.currency = currency
	f.reservation.Status = domain.StatusWaitingDeposit
	f.reservation.DepositPercent = &percent
	f.reservation.DepositAmount = &amount
	f.reservation.DepositCurrency = currency
	return nil
}

type fakeMenuClient struct {
	restaurant *menuservice.Restaurant
	err        error
}

func (f *fakeMenuClient) GetRestaurant(_ context.Context, _ int64) (*menuservice.Restaurant, error) {
	return f.restaurant, f.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []notifyqueue.DepositRequestedEvent
	err    error
	done   chan struct{}
}

func newFakePublisher(err error) *fakePublisher {
	return &fakePublisher{err: err, done: make(chan struct{}, 1)}
}

func (f *fakePublisher) PublishDepositRequested(_ context.Context, event notifyqueue.DepositRequestedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	f.done <- struct{}{}
	return f.err
}

func (f *fakePublisher) wait(t *testing.T) notifyqueue.DepositRequestedEvent {
	t.Helper()
	select {
	case <-f.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not published")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	require.Len(t, f.events, 1)
	return f.events[0]
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func confirmedReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:           42,
		Code:         "R-7GJ4KQ",
		RestaurantID: 1,
		UserID:       10,
		Items: []*domain.ReservationItem{
			{MenuItemID: 100, Name: "Pho Bo", UnitPrice: 50000, Quantity: 1},
			{MenuItemID: 101, Name: "Goi Cuon", UnitPrice: 30000, Quantity: 2},
		},
		GuestCount:      2,
		ArrivalAt:       time.Date(2026, 3, 11, 19, 0, 0, 0, time.UTC),
		ContactName:     "Nguyen Van A",
		ContactPhone:    "+84901234567",
		Status:          domain.StatusConfirmed,
		DepositCurrency: "VND",
	}
}

func staffRestaurant() *menuservice.Restaurant {
	return &menuservice.Restaurant{ID: 1, Name: "Quan Ngon", Currency: "VND", OwnerIDs: []int64{77}, IsActive: true}
}

func TestExecute(t *testing.T) {
	t.Run("requests deposit and publishes notification", func(t *testing.T) {
		repo := &fakeRepo{reservation: confirmedReservation()}
		pub := newFakePublisher(nil)
		uc := NewUseCase(repo, &fakeMenuClient{restaurant: staffRestaurant()}, pub, noopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{
			UserID:           77,
			ReservationID:    42,
			DepositPercent:   30,
			SendNotification: true,
			EmailNote:        ptr.Ptr("переведите депозит до четверга"),
		})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusWaitingDeposit), resp.Status)
		require.NotNil(t, resp.DepositAmount)
		// round(110000 * 30 / 100) = 33000
		assert.Equal(t, 33000.0, *resp.DepositAmount)
		assert.Equal(t, "VND", resp.DepositCurrency)

		event := pub.wait(t)
		assert.Equal(t, int64(42), event.ReservationID)
		assert.Equal(t, "R-7GJ4KQ", event.Code)
		assert.Equal(t, 30, event.DepositPercent)
		assert.Equal(t, 33000.0, event.DepositAmount)

		// В письмо уходит сообщение персонала, а не заметка клиента
		require.NotNil(t, event.EmailNote)
		assert.Equal(t, "переведите депозит до четверга", *event.EmailNote)
	})

	t.Run("notification suppressed when not requested", func(t *testing.T) {
		repo := &fakeRepo{reservation: confirmedReservation()}
		pub := newFakePublisher(nil)
		uc := NewUseCase(repo, &fakeMenuClient{restaurant: staffRestaurant()}, pub, noopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{
			UserID:           77,
			ReservationID:    42,
			DepositPercent:   30,
			SendNotification: false,
		})
		require.NoError(t, err)

		// Переход состоялся, но событие не публиковалось
		assert.Equal(t, string(domain.StatusWaitingDeposit), resp.Status)
		pub.mu.Lock()
		assert.Empty(t, pub.events)
		pub.mu.Unlock()
	})

	t.Run("customer note does not leak into email note", func(t *testing.T) {
		withNote := confirmedReservation()
		withNote.CustomerNote = ptr.Ptr("столик у окна")
		repo := &fakeRepo{reservation: withNote}
		pub := newFakePublisher(nil)
		uc := NewUseCase(repo, &fakeMenuClient{restaurant: staffRestaurant()}, pub, noopLogger{})

		_, err := uc.Execute(context.Background(), &Request{
			UserID:           77,
			ReservationID:    42,
			DepositPercent:   30,
			SendNotification: true,
		})
		require.NoError(t, err)

		event := pub.wait(t)
		assert.Nil(t, event.EmailNote)
	})

	t.Run("publisher failure does not affect result", func(t *testing.T) {
		repo := &fakeRepo{reservation: confirmedReservation()}
		pub := newFakePublisher(assert.AnError)
		uc := NewUseCase(repo, &fakeMenuClient{restaurant: staffRestaurant()}, pub, noopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{
			UserID:           77,
			ReservationID:    42,
			DepositPercent:   30,
			SendNotification: true,
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusWaitingDeposit), resp.Status)
		pub.wait(t)
	})

	t.Run("nil publisher skips notification", func(t *testing.T) {
		repo := &fakeRepo{reservation: confirmedReservation()}
		uc := NewUseCase(repo, &fakeMenuClient{restaurant: staffRestaurant()}, nil, noopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{UserID: 77, ReservationID: 42, DepositPercent: 30})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusWaitingDeposit), resp.Status)
	})

	t.Run("percent out of range", func(t *testing.T) {
		repo := &fakeRepo{reservation: confirmedReservation()}
		uc := NewUseCase(repo, &fakeMenuClient{restaurant: staffRestaurant()}, nil, noopLogger{})

		for _, percent := range []int{0, -5, 101} {
			_, err := uc.Execute(context.Background(), &Request{UserID: 77, ReservationID: 42, DepositPercent: percent})
			assert.ErrorIs(t, err, ErrInvalidPercent, "percent=%d", percent)
		}
		assert.Zero(t, repo.casCalls)
	})

	t.Run("non-staff user denied", func(t *testing.T) {
		repo := &fakeRepo{reservation: confirmedReservation()}
		uc := NewUseCase(repo, &fakeMenuClient{restaurant: staffRestaurant()}, nil, noopLogger{})

		_, err := uc.Execute(context.Background(), &Request{UserID: 10, ReservationID: 42, DepositPercent: 30})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Zero(t, repo.casCalls)
	})

	t.Run("deposit from pending rejected", func(t *testing.T) {
		pending := confirmedReservation()
		pending.Status = domain.StatusPending
		repo := &fakeRepo{reservation: pending}
		uc := NewUseCase(repo, &fakeMenuClient{restaurant: staffRestaurant()}, nil, noopLogger{})

		_, err := uc.Execute(context.Background(), &Request{UserID: 77, ReservationID: 42, DepositPercent: 30})
		assert.ErrorIs(t, err, ErrStatusConflict)
		assert.Zero(t, repo.casCalls)
	})

	t.Run("concurrent transition loses check-and-set", func(t *testing.T) {
		repo := &fakeRepo{reservation: confirmedReservation(), casErr: storage.ErrStatusConflict}
		uc := NewUseCase(repo, &fakeMenuClient{restaurant: staffRestaurant()}, nil, noopLogger{})

		_, err := uc.Execute(context.Background(), &Request{UserID: 77, ReservationID: 42, DepositPercent: 30})
		assert.ErrorIs(t, err, ErrStatusConflict)
	})

	t.Run("reservation not found", func(t *testing.T) {
		repo := &fakeRepo{getErr: storage.ErrReservationNotFound}
		uc := NewUseCase(repo, &fakeMenuClient{restaurant: staffRestaurant()}, nil, noopLogger{})

		_, err := uc.Execute(context.Background(), &Request{UserID: 77, ReservationID: 404, DepositPercent: 30})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("restaurant not found", func(t *testing.T) {
		repo := &fakeRepo{reservation: confirmedReservation()}
		uc := NewUseCase(repo, &fakeMenuClient{err: menuservice.ErrRestaurantNotFound}, nil, noopLogger{})

		_, err := uc.Execute(context.Background(), &Request{UserID: 77, ReservationID: 42, DepositPercent: 30})
		assert.ErrorIs(t, err, ErrRestaurantNotFound)
	})

	t.Run("full prepayment allowed", func(t *testing.T) {
		repo := &fakeRepo{reservation: confirmedReservation()}
		uc := NewUseCase(repo, &fakeMenuClient{restaurant: staffRestaurant()}, nil, noopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{UserID: 77, ReservationID: 42, DepositPercent: 100})
		require.NoError(t, err)
		require.NotNil(t, resp.DepositAmount)
		assert.Equal(t, 110000.0, *resp.DepositAmount)
	})
}
