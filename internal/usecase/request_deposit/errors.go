package request_deposit

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("request_deposit: reservation not found")

	// ErrRestaurantNotFound возвращается, когда ресторан не найден
	ErrRestaurantNotFound = errors.New("request_deposit: restaurant not found")

	// ErrAccessDenied возвращается, когда пользователь не является персоналом ресторана
	ErrAccessDenied = errors.New("request_deposit: access denied")

	// ErrStatusConflict возвращается, когда статус бронирования не допускает запрос депозита
	ErrStatusConflict = errors.New("request_deposit: reservation status does not allow deposit request")

	// ErrInvalidPercent возвращается при проценте депозита вне диапазона (0, 100]
	ErrInvalidPercent = errors.New("request_deposit: deposit percent must be between 1 and 100")

	// ErrInvalidInput возвращается при прочих некорректных входных данных
	ErrInvalidInput = errors.New("request_deposit: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_deposit: internal error")
)
