package mark_deposit_paid

// MarkDepositPaidRequest HTTP request model
type MarkDepositPaidRequest struct {
	PaymentReference string `json:"paymentReference"` // Идентификатор платежа во внешней системе
}
