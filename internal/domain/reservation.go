package domain

import (
	"math"
	"time"
)

// ReservationStatus represents the lifecycle status of a table reservation
type ReservationStatus string

const (
	StatusPending        ReservationStatus = "pending"
	StatusConfirmed      ReservationStatus = "confirmed"
	StatusWaitingDeposit ReservationStatus = "waiting_deposit"
	StatusDepositPaid    ReservationStatus = "deposit_paid"
	StatusDone           ReservationStatus = "done"
	StatusRejected       ReservationStatus = "rejected"
	StatusCancelled      ReservationStatus = "cancelled"
)

// IsValid returns true if the status is one of the known lifecycle states
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusWaitingDeposit,
		StatusDepositPaid, StatusDone, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true if no further transition is defined from the status
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusRejected || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to target is allowed
// by the lifecycle graph:
//
//	pending → confirmed → waiting_deposit → deposit_paid → done
//	pending → rejected
//	{pending, confirmed, waiting_deposit} → cancelled
//	confirmed → done (no deposit required)
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	switch s {
	case StatusPending:
		return target == StatusConfirmed || target == StatusRejected || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusWaitingDeposit || target == StatusDone || target == StatusCancelled
	case StatusWaitingDeposit:
		return target == StatusDepositPaid || target == StatusCancelled
	case StatusDepositPaid:
		return target == StatusDone
	case StatusDone, StatusRejected, StatusCancelled:
		return false
	default:
		return false
	}
}

// ReservationItem represents one ordered line of a reservation.
// Name and UnitPrice are denormalized from the menu catalog at order time,
// so later menu edits never change what the guest agreed to pay.
type ReservationItem struct {
	ID            int64
	ReservationID int64
	MenuItemID    int64
	Name          string
	UnitPrice     float64
	Quantity      int
	Note          *string
}

// LineTotal returns quantity × unit price for the line
func (i *ReservationItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Reservation represents a customer's table-booking request in the system
type Reservation struct {
	ID           int64
	Code         string // короткий код для персонала, например "R-7KQ2MF"
	RestaurantID int64
	UserID       int64

	Items      []*ReservationItem
	GuestCount int
	ArrivalAt  time.Time

	ContactName  string
	ContactPhone string

	CustomerNote *string
	OwnerNote    *string // заполняется персоналом, виден клиенту (причина отказа и т.п.)

	Status ReservationStatus

	// Deposit sub-record. DepositPercent = nil means no deposit was ever requested.
	DepositPercent   *int
	DepositAmount    *float64
	DepositCurrency  string
	IsDepositPaid    bool
	PaymentReference *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalAmount returns the sum of all item line totals
func (r *Reservation) TotalAmount() float64 {
	var total float64
	for _, item := range r.Items {
		total += item.LineTotal()
	}
	return total
}

// DepositRequested returns true if a deposit has been requested for the reservation
func (r *Reservation) DepositRequested() bool {
	return r.DepositPercent != nil
}

// IsTerminal returns true if the reservation reached a terminal status
func (r *Reservation) IsTerminal() bool {
	return r.Status.IsTerminal()
}

// CanBeCancelled returns true if the reservation can still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status.CanTransitionTo(StatusCancelled)
}

// CanBeConfirmed returns true if staff can confirm the pending request
func (r *Reservation) CanBeConfirmed() bool {
	return r.Status == StatusPending
}

// CanRequestDeposit returns true if staff can request a deposit
func (r *Reservation) CanRequestDeposit() bool {
	return r.Status == StatusConfirmed
}

// CanBeMarkedPaid returns true if the deposit can be acknowledged as paid
func (r *Reservation) CanBeMarkedPaid() bool {
	return r.Status == StatusWaitingDeposit
}

// CanBeFinalized returns true if staff can settle the reservation as done
func (r *Reservation) CanBeFinalized() bool {
	return r.Status == StatusConfirmed || r.Status == StatusDepositPaid
}

// ComputeDepositAmount computes the deposit for an order total and a percent (0-100).
// The amount is rounded to the nearest whole unit of the currency and stored
// alongside the percent, so display never recomputes from possibly-changed prices.
func ComputeDepositAmount(total float64, percent int) float64 {
	return math.Round(total * float64(percent) / 100)
}

// RestaurantReservationsFilter фильтр для постраничной выборки бронирований ресторана
type RestaurantReservationsFilter struct {
	RestaurantID int64              // Обязательный параметр
	Status       *ReservationStatus // Фильтр по статусу (опционально)
	Page         int64              // Номер страницы, начиная с 1
	Limit        int64              // Размер страницы
}

// Offset возвращает смещение выборки для текущей страницы
func (f *RestaurantReservationsFilter) Offset() int64 {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}
