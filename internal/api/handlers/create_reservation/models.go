package create_reservation

import (
	"time"

	createReservation "github.com/m04kA/FoodMap-ReservationService/internal/usecase/create_reservation"
)

// RequestItem позиция заказа в HTTP запросе
type RequestItem struct {
	MenuItemID int64   `json:"menuItemId"`
	Quantity   int     `json:"quantity"`
	Note       *string `json:"note,omitempty"`
}

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	RestaurantID int64         `json:"restaurantId"`
	Items        []RequestItem `json:"items"`
	GuestCount   int           `json:"guestCount"`
	ArrivalAt    string        `json:"arrivalAt"` // RFC3339, например "2026-03-11T19:00:00+07:00"
	ContactName  string        `json:"contactName"`
	ContactPhone string        `json:"contactPhone"`
	CustomerNote *string       `json:"customerNote,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	arrivalAt, err := time.Parse(time.RFC3339, r.ArrivalAt)
	if err != nil {
		return nil, err
	}

	items := make([]createReservation.RequestItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = createReservation.RequestItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Note:       item.Note,
		}
	}

	return &createReservation.Request{
		UserID:       userID,
		RestaurantID: r.RestaurantID,
		Items:        items,
		GuestCount:   r.GuestCount,
		ArrivalAt:    arrivalAt,
		ContactName:  r.ContactName,
		ContactPhone: r.ContactPhone,
		CustomerNote: r.CustomerNote,
	}, nil
}
