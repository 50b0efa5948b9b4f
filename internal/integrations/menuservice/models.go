package menuservice

// Restaurant модель ресторана из MenuService
type Restaurant struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Currency string  `json:"currency"` // Код валюты меню, например "VND"
	OwnerIDs []int64 `json:"owner_ids"`
	IsActive bool    `json:"is_active"`
}

// IsOwner возвращает true, если пользователь входит в персонал ресторана
func (r *Restaurant) IsOwner(userID int64) bool {
	for _, id := range r.OwnerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// MenuItem модель позиции меню из MenuService
type MenuItem struct {
	ID           int64   `json:"id"`
	RestaurantID int64   `json:"restaurant_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	IsAvailable  bool    `json:"is_available"`
}

// ErrorResponse модель ошибки от MenuService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
