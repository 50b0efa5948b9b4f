package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionTo(t *testing.T) {
	allStatuses := []ReservationStatus{
		StatusPending, StatusConfirmed, StatusWaitingDeposit,
		StatusDepositPaid, StatusDone, StatusRejected, StatusCancelled,
	}

	allowed := map[ReservationStatus][]ReservationStatus{
		StatusPending:        {StatusConfirmed, StatusRejected, StatusCancelled},
		StatusConfirmed:      {StatusWaitingDeposit, StatusDone, StatusCancelled},
		StatusWaitingDeposit: {StatusDepositPaid, StatusCancelled},
		StatusDepositPaid:    {StatusDone},
		StatusDone:           {},
		StatusRejected:       {},
		StatusCancelled:      {},
	}

	for from, targets := range allowed {
		allowedSet := make(map[ReservationStatus]bool, len(targets))
		for _, target := range targets {
			allowedSet[target] = true
		}

		for _, to := range allStatuses {
			got := from.CanTransitionTo(to)
			assert.Equal(t, allowedSet[to], got, "transition %s -> %s", from, to)
		}
	}
}

func TestTerminalStatusesHaveNoTransitions(t *testing.T) {
	for _, terminal := range TerminalStatuses {
		assert.True(t, terminal.IsTerminal(), "status %s must be terminal", terminal)
		for _, target := range append(ActiveStatuses, TerminalStatuses...) {
			assert.False(t, terminal.CanTransitionTo(target),
				"terminal status %s must not allow transition to %s", terminal, target)
		}
	}

	for _, active := range ActiveStatuses {
		assert.False(t, active.IsTerminal(), "status %s must not be terminal", active)
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range append(ActiveStatuses, TerminalStatuses...) {
		assert.True(t, s.IsValid())
	}

	assert.False(t, ReservationStatus("").IsValid())
	assert.False(t, ReservationStatus("in_progress").IsValid())
}

func TestReservationTotalAmount(t *testing.T) {
	r := &Reservation{
		Items: []*ReservationItem{
			{MenuItemID: 1, Name: "Pho bo", UnitPrice: 50000, Quantity: 1},
			{MenuItemID: 2, Name: "Goi cuon", UnitPrice: 30000, Quantity: 2},
		},
	}

	assert.Equal(t, 110000.0, r.TotalAmount())
}

func TestComputeDepositAmount(t *testing.T) {
	tests := []struct {
		name    string
		total   float64
		percent int
		want    float64
	}{
		{"thirty percent of 110000", 110000, 30, 33000},
		{"full deposit", 110000, 100, 110000},
		{"rounding up", 99999, 33, 33000}, // 32999.67 -> 33000
		{"rounding down", 100001, 33, 33000},
		{"one percent", 110000, 1, 1100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeDepositAmount(tt.total, tt.percent))
		})
	}
}

func TestComputeDepositAmountMonotonicInPercent(t *testing.T) {
	const total = 137500.0

	prev := 0.0
	for percent := 1; percent <= 100; percent++ {
		amount := ComputeDepositAmount(total, percent)
		require.GreaterOrEqual(t, amount, prev,
			"deposit amount must not decrease when percent grows: percent=%d", percent)
		prev = amount
	}
}

func TestReservationPredicates(t *testing.T) {
	r := &Reservation{Status: StatusPending}
	assert.True(t, r.CanBeConfirmed())
	assert.True(t, r.CanBeCancelled())
	assert.False(t, r.CanRequestDeposit())
	assert.False(t, r.CanBeMarkedPaid())
	assert.False(t, r.CanBeFinalized())

	r.Status = StatusConfirmed
	assert.True(t, r.CanRequestDeposit())
	assert.True(t, r.CanBeFinalized())
	assert.True(t, r.CanBeCancelled())

	r.Status = StatusWaitingDeposit
	assert.True(t, r.CanBeMarkedPaid())
	assert.True(t, r.CanBeCancelled())
	assert.False(t, r.CanBeFinalized())

	r.Status = StatusDepositPaid
	assert.True(t, r.CanBeFinalized())
	assert.False(t, r.CanBeCancelled())

	r.Status = StatusDone
	assert.True(t, r.IsTerminal())
	assert.False(t, r.CanBeCancelled())
	assert.False(t, r.CanBeFinalized())
}

func TestDepositRequested(t *testing.T) {
	r := &Reservation{}
	assert.False(t, r.DepositRequested())

	percent := 30
	r.DepositPercent = &percent
	assert.True(t, r.DepositRequested())
}

func TestFilterOffset(t *testing.T) {
	f := &RestaurantReservationsFilter{Page: 1, Limit: 20}
	assert.Equal(t, int64(0), f.Offset())

	f.Page = 3
	assert.Equal(t, int64(40), f.Offset())

	f.Page = 0
	assert.Equal(t, int64(0), f.Offset())
}
