package create_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/FoodMap-ReservationService/internal/domain"
	"github.com/m04kA/FoodMap-ReservationService/internal/integrations/menuservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.RestaurantID <= 0 {
		return fmt.Errorf("%w: restaurantID must be positive", ErrInvalidInput)
	}

	if len(req.Items) == 0 {
		return ErrEmptyItems
	}

	for i, item := range req.Items {
		if item.MenuItemID <= 0 {
			return fmt.Errorf("%w: items[%d].menuItemId must be positive", ErrInvalidInput, i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: items[%d].quantity must be at least 1", ErrInvalidInput, i)
		}
		if item.Note != nil && len(*item.Note) > domain.MaxItemNoteLength {
			return fmt.Errorf("%w: items[%d].note exceeds %d characters", ErrInvalidInput, i, domain.MaxItemNoteLength)
		}
	}

	if req.GuestCount < domain.MinGuestCount {
		return fmt.Errorf("%w: guestCount must be at least %d", ErrInvalidGuestCount, domain.MinGuestCount)
	}

	if req.GuestCount > domain.MaxGuestCount {
		return fmt.Errorf("%w: guestCount exceeds %d", ErrInvalidGuestCount, domain.MaxGuestCount)
	}

	if req.ArrivalAt.IsZero() {
		return fmt.Errorf("%w: arrivalAt is required", ErrInvalidArrivalTime)
	}

	// Время прибытия должно быть в будущем
	if !req.ArrivalAt.After(now) {
		return fmt.Errorf("%w: arrivalAt must be in the future", ErrInvalidArrivalTime)
	}

	if strings.TrimSpace(req.ContactName) == "" || strings.TrimSpace(req.ContactPhone) == "" {
		return ErrMissingContact
	}

	if len(req.ContactName) > domain.MaxContactNameLength {
		return fmt.Errorf("%w: contactName exceeds %d characters", ErrInvalidInput, domain.MaxContactNameLength)
	}

	if len(req.ContactPhone) > domain.MaxContactPhoneLength {
		return fmt.Errorf("%w: contactPhone exceeds %d characters", ErrInvalidInput, domain.MaxContactPhoneLength)
	}

	if req.CustomerNote != nil && len(*req.CustomerNote) > domain.MaxNoteLength {
		return fmt.Errorf("%w: customerNote exceeds %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	return nil
}

// resolveItems сопоставляет позиции запроса с каталогом меню ресторана.
// Название и цена берутся из каталога, повторяющиеся позиции складываются.
func resolveItems(reqItems []RequestItem, menuItems []menuservice.MenuItem) ([]*domain.ReservationItem, error) {
	catalog := make(map[int64]menuservice.MenuItem, len(menuItems))
	for _, mi := range menuItems {
		catalog[mi.ID] = mi
	}

	resolved := make([]*domain.ReservationItem, 0, len(reqItems))
	index := make(map[int64]int, len(reqItems))

	for _, item := range reqItems {
		mi, ok := catalog[item.MenuItemID]
		if !ok {
			return nil, fmt.Errorf("%w: menu item id=%d", ErrMenuItemNotFound, item.MenuItemID)
		}
		if !mi.IsAvailable {
			return nil, fmt.Errorf("%w: menu item id=%d", ErrMenuItemUnavailable, item.MenuItemID)
		}

		// Повторная позиция — увеличиваем количество существующей строки
		if pos, seen := index[item.MenuItemID]; seen {
			resolved[pos].Quantity += item.Quantity
			if item.Note != nil {
				resolved[pos].Note = item.Note
			}
			continue
		}

		index[item.MenuItemID] = len(resolved)
		resolved = append(resolved, &domain.ReservationItem{
			MenuItemID: mi.ID,
			Name:       mi.Name,
			UnitPrice:  mi.Price,
			Quantity:   item.Quantity,
			Note:       item.Note,
		})
	}

	return resolved, nil
}

// trimOptional обрезает пробелы в опциональной строке, пустая строка превращается в nil
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
