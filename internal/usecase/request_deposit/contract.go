package request_deposit

import (
	"context"

	"github.com/m04kA/FoodMap-ReservationService/internal/domain"
	"github.com/m04kA/FoodMap-ReservationService/internal/integrations/menuservice"
	"github.com/m04kA/FoodMap-ReservationService/internal/integrations/notifyqueue"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	RequestDeposit(ctx context.Context, id int64, from domain.ReservationStatus, percent int, amount float64, currency string) error
}

// MenuServiceClient интерфейс клиента для MenuService
type MenuServiceClient interface {
	GetRestaurant(ctx context.Context, restaurantID int64) (*menuservice.Restaurant, error)
}

// NotificationPublisher интерфейс публикации уведомлений о запросе депозита
type NotificationPublisher interface {
	PublishDepositRequested(ctx context.Context, event notifyqueue.DepositRequestedEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
