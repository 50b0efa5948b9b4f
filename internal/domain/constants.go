package domain

// Default pagination values
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Business validation constants
const (
	MinGuestCount = 1
	MaxGuestCount = 100

	MinDepositPercent = 1
	MaxDepositPercent = 100

	MaxNoteLength         = 500
	MaxContactNameLength  = 120
	MaxContactPhoneLength = 20
	MaxItemNoteLength     = 250
)

// DefaultCurrency валюта по умолчанию, если ресторан не указал свою
const DefaultCurrency = "VND"

// Reservation code generation
const (
	// CodeAlphabet без визуально похожих символов (0/O, 1/I/L)
	CodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	CodeLength   = 6
	CodePrefix   = "R-"
)

// ActiveStatuses список статусов, в которых бронирование ещё требует действий
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusWaitingDeposit,
	StatusDepositPaid,
}

// TerminalStatuses список завершённых статусов
var TerminalStatuses = []ReservationStatus{
	StatusDone,
	StatusRejected,
	StatusCancelled,
}
