package reservations

import (
	"context"

	"github.com/m04kA/FoodMap-ReservationService/internal/domain"
	"github.com/m04kA/FoodMap-ReservationService/internal/integrations/menuservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByRestaurant(ctx context.Context, filter domain.RestaurantReservationsFilter) ([]*domain.Reservation, int64, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.ReservationStatus, ownerNote *string) error
	MarkDepositPaid(ctx context.Context, id int64, from domain.ReservationStatus, paymentReference string) error
}

// MenuServiceClient интерфейс клиента для MenuService
type MenuServiceClient interface {
	GetRestaurant(ctx context.Context, restaurantID int64) (*menuservice.Restaurant, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
