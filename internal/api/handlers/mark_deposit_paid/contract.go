package mark_deposit_paid

import (
	"context"

	"github.com/m04kA/FoodMap-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	MarkPaid(ctx context.Context, reservationID int64, req *models.MarkPaidRequest) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
