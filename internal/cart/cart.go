package cart

import (
	"fmt"
	"sync"
)

// Item позиция меню, добавляемая в корзину
type Item struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
}

// Line строка корзины
type Line struct {
	MenuItemID int64   `json:"menuItemId"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unitPrice"`
	Quantity   int     `json:"quantity"`
	Note       *string `json:"note,omitempty"`
}

// Summary сводка корзины для бейджа и кнопки оформления
type Summary struct {
	ItemCount  int     `json:"itemCount"`
	TotalPrice float64 `json:"totalPrice"`
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Store потокобезопасное хранилище корзин пользователя, по одной на ресторан.
// Состояние живет в памяти и после каждой мутации сбрасывается в Storage.
// Ошибка записи не прерывает работу с корзиной, только логируется.
type Store struct {
	mu      sync.Mutex
	carts   map[int64][]Line
	storage Storage
	logger  Logger
}

// NewStore создает корзину, поднимая сохраненное состояние из storage.
// Поврежденное или нечитаемое состояние заменяется пустым.
func NewStore(storage Storage, logger Logger) *Store {
	carts, err := storage.Load()
	if err != nil {
		logger.Warn("cart: failed to load saved state, starting empty: %v", err)
		carts = map[int64][]Line{}
	}

	return &Store{
		carts:   carts,
		storage: storage,
		logger:  logger,
	}
}

// AddItem добавляет позицию в корзину ресторана.
// Повторное добавление той же позиции увеличивает количество.
func (s *Store) AddItem(restaurantID int64, item Item, quantity int) error {
	if restaurantID <= 0 {
		return ErrInvalidRestaurantID
	}
	if item.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidItem)
	}
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[restaurantID]
	for i := range lines {
		if lines[i].MenuItemID == item.ID {
			lines[i].Quantity += quantity
			s.carts[restaurantID] = lines
			s.persist()
			return nil
		}
	}

	s.carts[restaurantID] = append(lines, Line{
		MenuItemID: item.ID,
		Name:       item.Name,
		UnitPrice:  item.UnitPrice,
		Quantity:   quantity,
	})
	s.persist()
	return nil
}

// SetQuantity устанавливает количество позиции.
// Количество меньше 1 удаляет позицию из корзины.
func (s *Store) SetQuantity(restaurantID, menuItemID int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[restaurantID]
	for i := range lines {
		if lines[i].MenuItemID != menuItemID {
			continue
		}

		if quantity < 1 {
			s.carts[restaurantID] = append(lines[:i], lines[i+1:]...)
			if len(s.carts[restaurantID]) == 0 {
				delete(s.carts, restaurantID)
			}
		} else {
			lines[i].Quantity = quantity
			s.carts[restaurantID] = lines
		}
		s.persist()
		return nil
	}

	return ErrItemNotFound
}

// SetNote устанавливает пожелание к позиции. Пустая строка убирает пожелание.
func (s *Store) SetNote(restaurantID, menuItemID int64, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[restaurantID]
	for i := range lines {
		if lines[i].MenuItemID != menuItemID {
			continue
		}

		if note == "" {
			lines[i].Note = nil
		} else {
			lines[i].Note = &note
		}
		s.carts[restaurantID] = lines
		s.persist()
		return nil
	}

	return ErrItemNotFound
}

// Clear очищает корзину ресторана. Корзины других ресторанов не затрагиваются.
func (s *Store) Clear(restaurantID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, restaurantID)
	s.persist()
}

// Lines возвращает копию строк корзины ресторана в порядке добавления
func (s *Store) Lines(restaurantID int64) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[restaurantID]
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

// Summarize возвращает сводку корзины: суммарное количество позиций и полную стоимость
func (s *Store) Summarize(restaurantID int64) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var summary Summary
	for _, line := range s.carts[restaurantID] {
		summary.ItemCount += line.Quantity
		summary.TotalPrice += line.UnitPrice * float64(line.Quantity)
	}
	return summary
}

// persist сбрасывает состояние в storage. Вызывается под мьютексом.
func (s *Store) persist() {
	if err := s.storage.Save(s.carts); err != nil {
		s.logger.Error("cart: failed to persist state: %v", err)
	}
}
