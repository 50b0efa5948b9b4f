package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/FoodMap-ReservationService/internal/domain"
	"github.com/m04kA/FoodMap-ReservationService/internal/integrations/menuservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// MenuServiceClient интерфейс клиента для MenuService
type MenuServiceClient interface {
	GetRestaurant(ctx context.Context, restaurantID int64) (*menuservice.Restaurant, error)
	GetMenuItems(ctx context.Context, restaurantID int64) ([]menuservice.MenuItem, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
