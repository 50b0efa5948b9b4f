package list_restaurant_reservations

import (
	"strconv"

	"github.com/m04kA/FoodMap-ReservationService/internal/service/reservations/models"
)

// ToServiceRequest собирает запрос к сервису из path и query параметров
func ToServiceRequest(restaurantID, userID int64, pageStr, limitStr, statusStr string) (*models.ListReservationsRequest, error) {
	req := &models.ListReservationsRequest{
		UserID:       userID,
		RestaurantID: restaurantID,
	}

	if pageStr != "" {
		page, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Page = page
	}

	if limitStr != "" {
		limit, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
