package request_deposit

// RequestDepositRequest HTTP request model
type RequestDepositRequest struct {
	DepositPercent   int     `json:"depositPercent"`      // Процент от суммы заказа, 1..100
	SendNotification bool    `json:"sendNotification"`    // Отправить ли клиенту уведомление
	EmailNote        *string `json:"emailNote,omitempty"` // Сообщение персонала для письма клиенту
}
