package list_restaurant_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/FoodMap-ReservationService/internal/api/handlers"
	"github.com/m04kA/FoodMap-ReservationService/internal/api/middleware"
	"github.com/m04kA/FoodMap-ReservationService/internal/service/reservations"
)

const (
	msgInvalidRestaurantID = "некорректный ID ресторана"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidParams       = "некорректные параметры запроса"
	msgInvalidStatus       = "некорректный статус бронирования"
	msgRestaurantNotFound  = "ресторан не найден"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/restaurants/{restaurantId}/reservations
// Query params: page, limit, status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	restaurantID, err := strconv.ParseInt(vars["restaurantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/reservations - Invalid restaurant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRestaurantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /restaurants/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(restaurantID, userID,
		query.Get("page"), query.Get("limit"), query.Get("status"))
	if err != nil {
		h.logger.Warn("GET /restaurants/{id}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем бронирования ресторана (сервис сам проверит права персонала)
	result, err := h.service.ListForRestaurant(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidStatus):
			h.logger.Warn("GET /restaurants/{id}/reservations - Invalid status filter %q: restaurant_id=%d",
				query.Get("status"), restaurantID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, reservations.ErrRestaurantNotFound):
			h.logger.Warn("GET /restaurants/{id}/reservations - Restaurant not found: restaurant_id=%d", restaurantID)
			handlers.RespondNotFound(w, msgRestaurantNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /restaurants/{id}/reservations - Access denied: restaurant_id=%d, user_id=%d",
				restaurantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /restaurants/{id}/reservations - Failed to list reservations: restaurant_id=%d, error=%v",
				restaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /restaurants/{id}/reservations - Retrieved %d reservations: restaurant_id=%d, user_id=%d",
		len(result.Reservations), restaurantID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
