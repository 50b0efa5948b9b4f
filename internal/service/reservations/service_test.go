package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FoodMap-ReservationService/internal/domain"
	storage "github.com/m04kA/FoodMap-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/FoodMap-ReservationService/internal/integrations/menuservice"
	"github.com/m04kA/FoodMap-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/FoodMap-ReservationService/pkg/ptr"
)

// Фейки зависимостей сервиса

type fakeRepo struct {
	reservations map[int64]*domain.Reservation
	listResult   []*domain.Reservation
	listTotal    int64
	lastFilter   domain.RestaurantReservationsFilter

	updateErr error
	markErr   error
}

func newFakeRepo(reservations ...*domain.Reservation) *fakeRepo {
	repo := &fakeRepo{reservations: map[int64]*domain.Reservation{}}
	for _, r := range reservations {
		repo.reservations[r.ID] = r
	}
	return repo
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, storage.ErrReservationNotFound
	}
	res := *r
	return &res, nil
}

func (f *fakeRepo) ListByRestaurant(_ context.Context, filter domain.RestaurantReservationsFilter) ([]*domain.Reservation, int64, error) {
	f.lastFilter = filter
	return f.listResult, f.listTotal, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, from, to domain.ReservationStatus, ownerNote *string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	r, ok := f.reservations[id]
	if !ok {
		return storage.ErrReservationNotFound
	}
	if r.Status != from {
		return storage.ErrStatusConflict
	}
	r.Status = to
	if ownerNote != nil {
		r.OwnerNote = ownerNote
	}
	return nil
}

func (f *fakeRepo) MarkDepositPaid(_ context.Context, id int64, from domain.ReservationStatus, reference string) error {
	if f.markErr != nil {
		return f.markErr
	}
	r, ok := f.reservations[id]
	if !ok {
		return storage.ErrReservationNotFound
	}
	if r.Status != from {
		return storage.ErrStatusConflict
	}
	r.Status = domain.StatusDepositPaid
	r.IsDepositPaid = true
	r.PaymentReference = &reference
	return nil
}

type fakeMenuClient struct {
	restaurant *menuservice.Restaurant
	err        error
}

func (f *fakeMenuClient) GetRestaurant(_ context.Context, _ int64) (*menuservice.Restaurant, error) {
	return f.restaurant, f.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const (
	ownerUserID = int64(10) // создатель бронирования
	staffUserID = int64(77) // персонал ресторана
	otherUserID = int64(99) // посторонний
)

func testReservation(status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:           42,
		Code:         "R-7GJ4KQ",
		RestaurantID: 1,
		UserID:       ownerUserID,
		Items: []*domain.ReservationItem{
			{MenuItemID: 100, Name: "Pho Bo", UnitPrice: 50000, Quantity: 1},
		},
		GuestCount:      2,
		ArrivalAt:       time.Date(2026, 3, 11, 19, 0, 0, 0, time.UTC),
		ContactName:     "Nguyen Van A",
		ContactPhone:    "+84901234567",
		Status:          status,
		DepositCurrency: "VND",
	}
}

func newTestService(repo *fakeRepo) *Service {
	restaurant := &menuservice.Restaurant{ID: 1, Name: "Quan Ngon", OwnerIDs: []int64{staffUserID}, IsActive: true}
	return NewService(repo, &fakeMenuClient{restaurant: restaurant}, noopLogger{})
}

func TestGetByID(t *testing.T) {
	t.Run("owner sees own reservation", func(t *testing.T) {
		svc := newTestService(newFakeRepo(testReservation(domain.StatusPending)))

		resp, err := svc.GetByID(context.Background(), 42, ownerUserID)
		require.NoError(t, err)
		assert.Equal(t, "R-7GJ4KQ", resp.Code)
	})

	t.Run("staff sees any reservation of the restaurant", func(t *testing.T) {
		svc := newTestService(newFakeRepo(testReservation(domain.StatusPending)))

		_, err := svc.GetByID(context.Background(), 42, staffUserID)
		assert.NoError(t, err)
	})

	t.Run("stranger denied", func(t *testing.T) {
		svc := newTestService(newFakeRepo(testReservation(domain.StatusPending)))

		_, err := svc.GetByID(context.Background(), 42, otherUserID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(newFakeRepo())

		_, err := svc.GetByID(context.Background(), 404, ownerUserID)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestListForRestaurant(t *testing.T) {
	t.Run("staff gets page with normalized pagination", func(t *testing.T) {
		repo := newFakeRepo()
		repo.listResult = []*domain.Reservation{testReservation(domain.StatusPending)}
		repo.listTotal = 45
		svc := newTestService(repo)

		resp, err := svc.ListForRestaurant(context.Background(), &models.ListReservationsRequest{
			UserID:       staffUserID,
			RestaurantID: 1,
			Limit:        500, // выше максимума
		})
		require.NoError(t, err)

		assert.Equal(t, int64(domain.DefaultPage), repo.lastFilter.Page)
		assert.Equal(t, int64(domain.MaxLimit), repo.lastFilter.Limit)
		assert.Equal(t, int64(45), resp.Meta.Total)
		assert.Equal(t, int64(1), resp.Meta.Page)
	})

	t.Run("non-staff denied", func(t *testing.T) {
		svc := newTestService(newFakeRepo())

		_, err := svc.ListForRestaurant(context.Background(), &models.ListReservationsRequest{
			UserID:       ownerUserID,
			RestaurantID: 1,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		svc := newTestService(newFakeRepo())

		_, err := svc.ListForRestaurant(context.Background(), &models.ListReservationsRequest{
			UserID:       staffUserID,
			RestaurantID: 1,
			Status:       ptr.Ptr("in_progress"),
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("staff confirms pending reservation", func(t *testing.T) {
		repo := newFakeRepo(testReservation(domain.StatusPending))
		svc := newTestService(repo)

		resp, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
			UserID: staffUserID,
			Status: "confirmed",
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	})

	t.Run("staff rejects with owner note", func(t *testing.T) {
		repo := newFakeRepo(testReservation(domain.StatusPending))
		svc := newTestService(repo)

		resp, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
			UserID:    staffUserID,
			Status:    "rejected",
			OwnerNote: ptr.Ptr("мест нет"),
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusRejected), resp.Status)
		require.NotNil(t, resp.OwnerNote)
		assert.Equal(t, "мест нет", *resp.OwnerNote)
	})

	t.Run("owner cancels own reservation", func(t *testing.T) {
		repo := newFakeRepo(testReservation(domain.StatusPending))
		svc := newTestService(repo)

		resp, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
			UserID: ownerUserID,
			Status: "cancelled",
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	})

	t.Run("owner cannot confirm", func(t *testing.T) {
		repo := newFakeRepo(testReservation(domain.StatusPending))
		svc := newTestService(repo)

		_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
			UserID: ownerUserID,
			Status: "confirmed",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		repo := newFakeRepo(testReservation(domain.StatusPending))
		svc := newTestService(repo)

		_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
			UserID: otherUserID,
			Status: "cancelled",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		svc := newTestService(newFakeRepo(testReservation(domain.StatusPending)))

		_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
			UserID: staffUserID,
			Status: "in_progress",
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("deposit statuses unreachable via status update", func(t *testing.T) {
		svc := newTestService(newFakeRepo(testReservation(domain.StatusConfirmed)))

		for _, status := range []string{"waiting_deposit", "deposit_paid", "done", "pending"} {
			_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
				UserID: staffUserID,
				Status: status,
			})
			assert.ErrorIs(t, err, ErrInvalidStatus, "status=%s", status)
		}
	})

	t.Run("illegal transition rejected", func(t *testing.T) {
		svc := newTestService(newFakeRepo(testReservation(domain.StatusDone)))

		_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
			UserID: staffUserID,
			Status: "cancelled",
		})
		assert.ErrorIs(t, err, ErrStatusConflict)
	})

	t.Run("concurrent loser gets conflict", func(t *testing.T) {
		repo := newFakeRepo(testReservation(domain.StatusPending))
		repo.updateErr = storage.ErrStatusConflict
		svc := newTestService(repo)

		_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
			UserID: staffUserID,
			Status: "confirmed",
		})
		assert.ErrorIs(t, err, ErrStatusConflict)
	})
}

func TestMarkPaid(t *testing.T) {
	waitingDeposit := func() *domain.Reservation {
		r := testReservation(domain.StatusWaitingDeposit)
		r.DepositPercent = ptr.Ptr(30)
		r.DepositAmount = ptr.Ptr(15000.0)
		return r
	}

	t.Run("marks deposit paid with reference", func(t *testing.T) {
		repo := newFakeRepo(waitingDeposit())
		svc := newTestService(repo)

		resp, err := svc.MarkPaid(context.Background(), 42, &models.MarkPaidRequest{
			UserID:           staffUserID,
			PaymentReference: "PAY-2026-0042",
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusDepositPaid), resp.Status)
		assert.True(t, resp.IsDepositPaid)
		require.NotNil(t, resp.PaymentReference)
		assert.Equal(t, "PAY-2026-0042", *resp.PaymentReference)
	})

	t.Run("empty reference rejected regardless of status", func(t *testing.T) {
		svc := newTestService(newFakeRepo(waitingDeposit()))

		for _, reference := range []string{"", "   ", "\t"} {
			_, err := svc.MarkPaid(context.Background(), 42, &models.MarkPaidRequest{
				UserID:           staffUserID,
				PaymentReference: reference,
			})
			assert.ErrorIs(t, err, ErrInvalidInput, "reference=%q", reference)
		}
	})

	t.Run("only waiting_deposit can be marked paid", func(t *testing.T) {
		for _, status := range []domain.ReservationStatus{
			domain.StatusPending, domain.StatusConfirmed, domain.StatusDepositPaid, domain.StatusDone,
		} {
			svc := newTestService(newFakeRepo(testReservation(status)))

			_, err := svc.MarkPaid(context.Background(), 42, &models.MarkPaidRequest{
				UserID:           staffUserID,
				PaymentReference: "PAY-1",
			})
			assert.ErrorIs(t, err, ErrStatusConflict, "status=%s", status)
		}
	})

	t.Run("non-staff denied", func(t *testing.T) {
		svc := newTestService(newFakeRepo(waitingDeposit()))

		_, err := svc.MarkPaid(context.Background(), 42, &models.MarkPaidRequest{
			UserID:           ownerUserID,
			PaymentReference: "PAY-1",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestConfirm(t *testing.T) {
	t.Run("finalizes confirmed reservation without deposit", func(t *testing.T) {
		repo := newFakeRepo(testReservation(domain.StatusConfirmed))
		svc := newTestService(repo)

		resp, err := svc.Confirm(context.Background(), 42, &models.ConfirmRequest{UserID: staffUserID})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusDone), resp.Status)
	})

	t.Run("finalizes after deposit paid", func(t *testing.T) {
		repo := newFakeRepo(testReservation(domain.StatusDepositPaid))
		svc := newTestService(repo)

		resp, err := svc.Confirm(context.Background(), 42, &models.ConfirmRequest{UserID: staffUserID})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusDone), resp.Status)
	})

	t.Run("cannot finalize from pending or waiting_deposit", func(t *testing.T) {
		for _, status := range []domain.ReservationStatus{domain.StatusPending, domain.StatusWaitingDeposit} {
			svc := newTestService(newFakeRepo(testReservation(status)))

			_, err := svc.Confirm(context.Background(), 42, &models.ConfirmRequest{UserID: staffUserID})
			assert.ErrorIs(t, err, ErrStatusConflict, "status=%s", status)
		}
	})

	t.Run("non-staff denied", func(t *testing.T) {
		svc := newTestService(newFakeRepo(testReservation(domain.StatusConfirmed)))

		_, err := svc.Confirm(context.Background(), 42, &models.ConfirmRequest{UserID: ownerUserID})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}
