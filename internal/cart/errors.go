package cart

import "errors"

var (
	// ErrInvalidRestaurantID возвращается при некорректном ID ресторана
	ErrInvalidRestaurantID = errors.New("cart: invalid restaurant id")

	// ErrInvalidItem возвращается при некорректной позиции меню
	ErrInvalidItem = errors.New("cart: invalid menu item")

	// ErrItemNotFound возвращается, когда позиции нет в корзине
	ErrItemNotFound = errors.New("cart: item not found")

	// ErrStorage возвращается при ошибках чтения/записи хранилища
	ErrStorage = errors.New("cart: storage error")
)
