package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testBooking(status BookingStatus) *Booking {
	b := &Booking{
		BookingDate:    time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		StartTime:      "19:00",
		EndTime:        "20:00",
		Duration:       60,
		BasePrice:      decimal.NewFromInt(3000),
		TotalPrice:     decimal.RequireFromString("4200.00"),
		CommissionRate: decimal.RequireFromString("0.10"),
		Status:         status,
	}
	b.RecalculateAmounts()
	return b
}

func TestRecalculateAmounts(t *testing.T) {
	b := testBooking(BookingStatusPending)

	if b.CommissionAmount.StringFixed(2) != "420.00" {
		t.Errorf("commission = %s, want 420.00", b.CommissionAmount.StringFixed(2))
	}
	if b.VenueAmount.StringFixed(2) != "3780.00" {
		t.Errorf("venue amount = %s, want 3780.00", b.VenueAmount.StringFixed(2))
	}
	if !b.CommissionAmount.Add(b.VenueAmount).Equal(b.TotalPrice) {
		t.Error("commission + venue must equal total")
	}

	// Identity holds after the inputs change, including rates that round.
	b.TotalPrice = decimal.RequireFromString("1234.57")
	b.CommissionRate = decimal.RequireFromString("0.0333")
	b.RecalculateAmounts()
	if !b.CommissionAmount.Add(b.VenueAmount).Equal(b.TotalPrice) {
		t.Errorf("identity broken after update: %s + %s != %s",
			b.CommissionAmount, b.VenueAmount, b.TotalPrice)
	}
}

func TestCancellationWindow(t *testing.T) {
	b := testBooking(BookingStatusConfirmed)
	start := b.StartDateTime()

	tests := []struct {
		name       string
		now        time.Time
		cancelable bool
		refund     string
	}{
		{"25h before", start.Add(-25 * time.Hour), true, "4200.00"},
		{"exactly 24h", start.Add(-24 * time.Hour), true, "4200.00"},
		{"23h59m before", start.Add(-24*time.Hour + time.Minute), false, "2100.00"},
		{"13h before", start.Add(-13 * time.Hour), false, "2100.00"},
		{"11h before", start.Add(-11 * time.Hour), false, "0.00"},
		{"after start", start.Add(time.Hour), false, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.CanBeCancelled(tt.now); got != tt.cancelable {
				t.Errorf("CanBeCancelled = %v, want %v", got, tt.cancelable)
			}
			// CalculateRefund is the tier table an admin/system override
			// consults even when the public gate is closed.
			if got := b.CalculateRefund(tt.now).StringFixed(2); got != tt.refund {
				t.Errorf("CalculateRefund = %s, want %s", got, tt.refund)
			}
		})
	}
}

func TestCancellationRequiresActiveStatus(t *testing.T) {
	for _, status := range []BookingStatus{
		BookingStatusCompleted, BookingStatusNoShow, BookingStatusRejected, BookingStatusCancelled,
	} {
		b := testBooking(status)
		now := b.StartDateTime().Add(-48 * time.Hour)
		if b.CanBeCancelled(now) {
			t.Errorf("%s booking must not be cancellable", status)
		}
		if !b.CalculateRefund(now).IsZero() {
			t.Errorf("%s booking must refund nothing", status)
		}
	}
}

func TestTransitions(t *testing.T) {
	legal := []struct {
		from, to BookingStatus
	}{
		{BookingStatusPending, BookingStatusConfirmed},
		{BookingStatusPending, BookingStatusRejected},
		{BookingStatusPending, BookingStatusCancelled},
		{BookingStatusConfirmed, BookingStatusPaid},
		{BookingStatusConfirmed, BookingStatusCompleted},
		{BookingStatusConfirmed, BookingStatusNoShow},
		{BookingStatusConfirmed, BookingStatusCancelled},
		{BookingStatusPaid, BookingStatusCompleted},
		{BookingStatusPaid, BookingStatusNoShow},
		{BookingStatusPaid, BookingStatusCancelled},
	}
	for _, tt := range legal {
		if !testBooking(tt.from).CanTransitionTo(tt.to) {
			t.Errorf("%s → %s should be legal", tt.from, tt.to)
		}
	}

	illegal := []struct {
		from, to BookingStatus
	}{
		{BookingStatusPending, BookingStatusCompleted},
		{BookingStatusPending, BookingStatusNoShow},
		{BookingStatusConfirmed, BookingStatusRejected},
		{BookingStatusPaid, BookingStatusRejected},
		{BookingStatusCompleted, BookingStatusCancelled},
		{BookingStatusCancelled, BookingStatusConfirmed},
		{BookingStatusRejected, BookingStatusPending},
		{BookingStatusNoShow, BookingStatusCompleted},
	}
	for _, tt := range illegal {
		if testBooking(tt.from).CanTransitionTo(tt.to) {
			t.Errorf("%s → %s must be rejected", tt.from, tt.to)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	for _, status := range []BookingStatus{
		BookingStatusCompleted, BookingStatusNoShow, BookingStatusRejected, BookingStatusCancelled,
	} {
		if !testBooking(status).IsTerminal() {
			t.Errorf("%s should be terminal", status)
		}
	}
	for _, status := range []BookingStatus{
		BookingStatusPending, BookingStatusConfirmed, BookingStatusPaid,
	} {
		if testBooking(status).IsTerminal() {
			t.Errorf("%s should not be terminal", status)
		}
	}
}

func TestShouldSendReminder(t *testing.T) {
	b := testBooking(BookingStatusConfirmed)
	start := b.StartDateTime()

	if !b.ShouldSendReminder(start.Add(-12 * time.Hour)) {
		t.Error("confirmed booking 12h out should get a reminder")
	}
	if b.ShouldSendReminder(start.Add(-25 * time.Hour)) {
		t.Error("too early for a reminder")
	}
	if b.ShouldSendReminder(start.Add(time.Minute)) {
		t.Error("no reminder after kickoff")
	}

	sent := start.Add(-20 * time.Hour)
	b.ReminderSentAt = &sent
	if b.ShouldSendReminder(start.Add(-12 * time.Hour)) {
		t.Error("reminder must not repeat")
	}

	pending := testBooking(BookingStatusPending)
	if pending.ShouldSendReminder(start.Add(-12 * time.Hour)) {
		t.Error("pending bookings get no reminder")
	}
}

func TestStartEndDateTime(t *testing.T) {
	b := testBooking(BookingStatusConfirmed)

	wantStart := time.Date(2024, 6, 15, 19, 0, 0, 0, time.UTC)
	if !b.StartDateTime().Equal(wantStart) {
		t.Errorf("StartDateTime = %v, want %v", b.StartDateTime(), wantStart)
	}

	wantEnd := time.Date(2024, 6, 15, 20, 0, 0, 0, time.UTC)
	if !b.EndDateTime().Equal(wantEnd) {
		t.Errorf("EndDateTime = %v, want %v", b.EndDateTime(), wantEnd)
	}

	if !b.IsUpcoming(wantStart.Add(-time.Hour)) {
		t.Error("booking before start should be upcoming")
	}
	if !b.IsPast(wantEnd.Add(time.Minute)) {
		t.Error("booking after end should be past")
	}
}
