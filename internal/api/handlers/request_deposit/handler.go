package request_deposit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/FoodMap-ReservationService/internal/api/handlers"
	"github.com/m04kA/FoodMap-ReservationService/internal/api/middleware"
	requestDeposit "github.com/m04kA/FoodMap-ReservationService/internal/usecase/request_deposit"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidPercent       = "процент депозита должен быть от 1 до 100"
	msgNotFound             = "бронирование не найдено"
	msgRestaurantNotFound   = "ресторан не найден"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgForbidden            = "доступ запрещен"
	msgStatusConflict       = "запрос депозита недоступен в текущем статусе бронирования"
)

type Handler struct {
	useCase RequestDepositUseCase
	logger  Logger
}

func NewHandler(useCase RequestDepositUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/deposit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/deposit - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations/{id}/deposit - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RequestDepositRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/deposit - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &requestDeposit.Request{
		UserID:           userID,
		ReservationID:    reservationID,
		DepositPercent:   req.DepositPercent,
		SendNotification: req.SendNotification,
		EmailNote:        req.EmailNote,
	})
	if err != nil {
		switch {
		case errors.Is(err, requestDeposit.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/deposit - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, requestDeposit.ErrRestaurantNotFound):
			h.logger.Warn("POST /reservations/{id}/deposit - Restaurant not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgRestaurantNotFound)

		case errors.Is(err, requestDeposit.ErrAccessDenied):
			h.logger.Warn("POST /reservations/{id}/deposit - Access denied: reservation_id=%d, user_id=%d",
				reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, requestDeposit.ErrInvalidPercent):
			h.logger.Warn("POST /reservations/{id}/deposit - Invalid percent=%d: reservation_id=%d",
				req.DepositPercent, reservationID)
			handlers.RespondBadRequest(w, msgInvalidPercent)

		case errors.Is(err, requestDeposit.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/deposit - Invalid input: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, requestDeposit.ErrStatusConflict):
			h.logger.Warn("POST /reservations/{id}/deposit - Status conflict: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgStatusConflict)

		default:
			h.logger.Error("POST /reservations/{id}/deposit - Failed to request deposit: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/deposit - Deposit requested successfully: reservation_id=%d, percent=%d, user_id=%d",
		reservationID, req.DepositPercent, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
