package models

import (
	"errors"
	"time"

	"github.com/m04kA/FoodMap-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// ListReservationsRequest запрос на получение бронирований ресторана
type ListReservationsRequest struct {
	UserID       int64   `json:"userId"`
	RestaurantID int64   `json:"restaurantId"`
	Page         int64   `json:"page,omitempty"`   // По умолчанию 1
	Limit        int64   `json:"limit,omitempty"`  // По умолчанию 20, максимум 100
	Status       *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр с нормализацией пагинации
func (r *ListReservationsRequest) ToDomainFilter() (domain.RestaurantReservationsFilter, error) {
	filter := domain.RestaurantReservationsFilter{
		RestaurantID: r.RestaurantID,
		Page:         r.Page,
		Limit:        r.Limit,
	}

	if filter.Page < 1 {
		filter.Page = domain.DefaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = domain.DefaultLimit
	}
	if filter.Limit > domain.MaxLimit {
		filter.Limit = domain.MaxLimit
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на смену статуса бронирования
// Через эту операцию доступны события: подтверждение, отказ и отмена
type UpdateStatusRequest struct {
	UserID    int64   `json:"userId"`
	Status    string  `json:"status"`
	OwnerNote *string `json:"ownerNote,omitempty"` // Заметка персонала (причина отказа)
}

// MarkPaidRequest запрос на фиксацию оплаты депозита
type MarkPaidRequest struct {
	UserID           int64  `json:"userId"`
	PaymentReference string `json:"paymentReference"`
}

// ConfirmRequest запрос на финальное подтверждение бронирования
type ConfirmRequest struct {
	UserID int64 `json:"userId"`
}

// Response модели

// ReservationItemResponse позиция заказа в ответе
type ReservationItemResponse struct {
	MenuItemID int64   `json:"menuItemId"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unitPrice"`
	Quantity   int     `json:"quantity"`
	Note       *string `json:"note,omitempty"`
	LineTotal  float64 `json:"lineTotal"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID           int64                     `json:"id"`
	Code         string                    `json:"code"`
	RestaurantID int64                     `json:"restaurantId"`
	UserID       int64                     `json:"userId"`
	Items        []ReservationItemResponse `json:"items"`
	GuestCount   int                       `json:"guestCount"`
	ArrivalAt    time.Time                 `json:"arrivalAt"`
	ContactName  string                    `json:"contactName"`
	ContactPhone string                    `json:"contactPhone"`
	CustomerNote *string                   `json:"customerNote,omitempty"`
	OwnerNote    *string                   `json:"ownerNote,omitempty"`
	Status       string                    `json:"status"`
	TotalAmount  float64                   `json:"totalAmount"`

	// Депозит (поля заполнены только если депозит запрашивался)
	DepositPercent   *int     `json:"depositPercent,omitempty"`
	DepositAmount    *float64 `json:"depositAmount,omitempty"`
	DepositCurrency  string   `json:"depositCurrency"`
	IsDepositPaid    bool     `json:"isDepositPaid"`
	PaymentReference *string  `json:"paymentReference,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PageMeta метаданные пагинации
type PageMeta struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// ReservationListResponse ответ со страницей бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Meta         PageMeta              `json:"meta"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	items := make([]ReservationItemResponse, len(r.Items))
	for i, item := range r.Items {
		items[i] = ReservationItemResponse{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			Note:       item.Note,
			LineTotal:  item.LineTotal(),
		}
	}

	return &ReservationResponse{
		ID:               r.ID,
		Code:             r.Code,
		RestaurantID:     r.RestaurantID,
		UserID:           r.UserID,
		Items:            items,
		GuestCount:       r.GuestCount,
		ArrivalAt:        r.ArrivalAt,
		ContactName:      r.ContactName,
		ContactPhone:     r.ContactPhone,
		CustomerNote:     r.CustomerNote,
		OwnerNote:        r.OwnerNote,
		Status:           string(r.Status),
		TotalAmount:      r.TotalAmount(),
		DepositPercent:   r.DepositPercent,
		DepositAmount:    r.DepositAmount,
		DepositCurrency:  r.DepositCurrency,
		IsDepositPaid:    r.IsDepositPaid,
		PaymentReference: r.PaymentReference,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует страницу domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation, filter domain.RestaurantReservationsFilter, total int64) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
		Meta: PageMeta{
			Page:  filter.Page,
			Limit: filter.Limit,
			Total: total,
			Pages: pagesCount(total, filter.Limit),
		},
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// pagesCount возвращает количество страниц для total записей
func pagesCount(total, limit int64) int64 {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
