package request_deposit

import (
	"context"

	requestDeposit "github.com/m04kA/FoodMap-ReservationService/internal/usecase/request_deposit"
)

type RequestDepositUseCase interface {
	Execute(ctx context.Context, req *requestDeposit.Request) (*requestDeposit.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
