package list_restaurant_reservations

import (
	"context"

	"github.com/m04kA/FoodMap-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	ListForRestaurant(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
