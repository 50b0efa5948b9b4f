package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/FoodMap-ReservationService/internal/api/handlers"
	"github.com/m04kA/FoodMap-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/FoodMap-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidArrivalAt      = "некорректный формат времени прибытия, ожидается RFC3339"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgRestaurantNotFound    = "ресторан не найден"
	msgRestaurantInactive    = "ресторан не принимает бронирования"
	msgMenuItemNotFound      = "позиция меню не найдена"
	msgMenuItemUnavailable   = "позиция меню временно недоступна"
	msgEmptyItems            = "заказ должен содержать хотя бы одну позицию"
	msgInvalidGuestCount     = "некорректное количество гостей"
	msgInvalidArrivalTime    = "время прибытия должно быть в будущем"
	msgMissingContact        = "необходимо указать имя и телефон для связи"
	msgInvalidReservationReq = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени прибытия)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse arrivalAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidArrivalAt)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrRestaurantNotFound):
			h.logger.Warn("POST /reservations - Restaurant not found: restaurant_id=%d", req.RestaurantID)
			handlers.RespondNotFound(w, msgRestaurantNotFound)

		case errors.Is(err, createReservation.ErrRestaurantInactive):
			h.logger.Warn("POST /reservations - Restaurant inactive: restaurant_id=%d", req.RestaurantID)
			handlers.RespondConflict(w, msgRestaurantInactive)

		case errors.Is(err, createReservation.ErrMenuItemNotFound):
			h.logger.Warn("POST /reservations - Menu item not found: restaurant_id=%d", req.RestaurantID)
			handlers.RespondBadRequest(w, msgMenuItemNotFound)

		case errors.Is(err, createReservation.ErrMenuItemUnavailable):
			h.logger.Warn("POST /reservations - Menu item unavailable: restaurant_id=%d", req.RestaurantID)
			handlers.RespondConflict(w, msgMenuItemUnavailable)

		case errors.Is(err, createReservation.ErrEmptyItems):
			h.logger.Warn("POST /reservations - Empty items: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgEmptyItems)

		case errors.Is(err, createReservation.ErrInvalidGuestCount):
			h.logger.Warn("POST /reservations - Invalid guest count: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidGuestCount)

		case errors.Is(err, createReservation.ErrInvalidArrivalTime):
			h.logger.Warn("POST /reservations - Invalid arrival time: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidArrivalTime)

		case errors.Is(err, createReservation.ErrMissingContact):
			h.logger.Warn("POST /reservations - Missing contact: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgMissingContact)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidReservationReq)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, restaurant_id=%d, error=%v",
				userID, req.RestaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, code=%s, user_id=%d",
		result.ID, result.Code, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
