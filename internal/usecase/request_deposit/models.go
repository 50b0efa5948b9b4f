package request_deposit

import (
	"github.com/m04kA/FoodMap-ReservationService/internal/domain"
	"github.com/m04kA/FoodMap-ReservationService/internal/service/reservations/models"
)

// Request модель запроса депозита по бронированию
type Request struct {
	UserID           int64   // ID пользователя (должен быть персоналом ресторана)
	ReservationID    int64   // ID бронирования
	DepositPercent   int     // Процент от суммы заказа, 1..100
	SendNotification bool    // Отправить ли клиенту уведомление о запросе депозита
	EmailNote        *string // Сообщение персонала для письма клиенту (опционально)
}

// Response модель ответа с обновленным бронированием
type Response = models.ReservationResponse

// toResponse конвертирует бронирование в response
func toResponse(r *domain.Reservation) *Response {
	return models.FromDomainReservation(r)
}
