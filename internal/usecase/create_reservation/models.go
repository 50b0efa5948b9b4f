package create_reservation

import (
	"time"

	"github.com/m04kA/FoodMap-ReservationService/internal/domain"
	"github.com/m04kA/FoodMap-ReservationService/internal/service/reservations/models"
)

// RequestItem позиция заказа в запросе на создание бронирования.
// Название и цена не принимаются от клиента — денормализуются из каталога меню.
type RequestItem struct {
	MenuItemID int64   // ID позиции меню
	Quantity   int     // Количество (>= 1)
	Note       *string // Пожелание к позиции (опционально)
}

// Request модель запроса на создание бронирования
type Request struct {
	UserID       int64         // ID пользователя, создающего бронирование
	RestaurantID int64         // ID ресторана
	Items        []RequestItem // Позиции заказа (минимум одна)
	GuestCount   int           // Количество гостей (>= 1)
	ArrivalAt    time.Time     // Желаемое время прибытия
	ContactName  string        // Имя для связи (обязательно)
	ContactPhone string        // Телефон для связи (обязательно)
	CustomerNote *string       // Пожелание клиента (опционально)
}

// Response модель ответа с созданным бронированием
// Переиспользует DTO сервиса, чтобы форма бронирования и дашборд видели одну схему
type Response = models.ReservationResponse

// toResponse конвертирует созданное бронирование в response
func toResponse(r *domain.Reservation) *Response {
	return models.FromDomainReservation(r)
}
