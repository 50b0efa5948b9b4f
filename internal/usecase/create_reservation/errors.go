package create_reservation

import "errors"

var (
	// ErrRestaurantNotFound возвращается, когда ресторан не найден
	ErrRestaurantNotFound = errors.New("create_reservation: restaurant not found")

	// ErrRestaurantInactive возвращается, когда ресторан не принимает бронирования
	ErrRestaurantInactive = errors.New("create_reservation: restaurant is not accepting reservations")

	// ErrMenuItemNotFound возвращается, когда позиция заказа не найдена в меню ресторана
	ErrMenuItemNotFound = errors.New("create_reservation: menu item not found")

	// ErrMenuItemUnavailable возвращается, когда позиция меню временно недоступна
	ErrMenuItemUnavailable = errors.New("create_reservation: menu item is not available")

	// ErrEmptyItems возвращается, когда заказ не содержит ни одной позиции
	ErrEmptyItems = errors.New("create_reservation: order must contain at least one item")

	// ErrInvalidGuestCount возвращается при некорректном количестве гостей
	ErrInvalidGuestCount = errors.New("create_reservation: invalid guest count")

	// ErrInvalidArrivalTime возвращается при некорректном времени прибытия
	ErrInvalidArrivalTime = errors.New("create_reservation: invalid arrival time")

	// ErrMissingContact возвращается, когда не заполнены контактные данные
	ErrMissingContact = errors.New("create_reservation: contact name and phone are required")

	// ErrInvalidInput возвращается при прочих некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
