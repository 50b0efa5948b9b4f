package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrRestaurantNotFound возвращается, когда ресторан не найден
	ErrRestaurantNotFound = errors.New("restaurant not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrStatusConflict возвращается, когда переход недопустим из текущего статуса
	// (в том числе когда бронирование уже успел изменить другой сотрудник).
	// Клиенту следует перечитать бронирование, а не повторять ту же форму.
	ErrStatusConflict = errors.New("reservation status conflict")

	// ErrInvalidStatus возвращается при попытке установить неизвестный или
	// недоступный через эту операцию статус
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
