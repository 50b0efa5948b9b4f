package notifyqueue

import "time"

// DepositRequestedEvent событие "запрошен депозит" для сервиса уведомлений.
// Сервис уведомлений сам решает, как доставить сообщение клиенту (SMS/email).
type DepositRequestedEvent struct {
	ReservationID  int64     `json:"reservation_id"`
	Code           string    `json:"code"`
	RestaurantID   int64     `json:"restaurant_id"`
	ContactName    string    `json:"contact_name"`
	ContactPhone   string    `json:"contact_phone"`
	DepositPercent int       `json:"deposit_percent"`
	DepositAmount  float64   `json:"deposit_amount"`
	Currency       string    `json:"currency"`
	EmailNote      *string   `json:"email_note,omitempty"`
	RequestedAt    time.Time `json:"requested_at"`
}
