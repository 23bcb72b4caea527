package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/Ariel200609/TuTurnoYa/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// ActiveBookingStatuses are the states that occupy a slot: only these
// participate in conflict detection.
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusPaid,
}

// bookingTransitions encodes the legal lifecycle edges. Terminal states
// have no outgoing edges.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusRejected, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusPaid, BookingStatusCancelled, BookingStatusCompleted, BookingStatusNoShow},
	BookingStatusPaid:      {BookingStatusCancelled, BookingStatusCompleted, BookingStatusNoShow},
}

// PaymentStatus tracks the external payment collaborator's view.
type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "pending"
	PaymentStatusPaid          PaymentStatus = "paid"
	PaymentStatusFailed        PaymentStatus = "failed"
	PaymentStatusRefunded      PaymentStatus = "refunded"
	PaymentStatusPartialRefund PaymentStatus = "partial_refund"
)

// CancelActor identifies who cancelled a booking.
type CancelActor string

const (
	CancelActorUser   CancelActor = "user"
	CancelActorVenue  CancelActor = "venue"
	CancelActorAdmin  CancelActor = "admin"
	CancelActorSystem CancelActor = "system"
)

// cancellationWindowHours is the minimum advance required for a user or
// venue cancellation. The refund tiers below are evaluated separately so an
// admin/system override still produces a defensible amount.
const cancellationWindowHours = 24

// Player is one participant on a booking.
type Player struct {
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Position string `json:"position,omitempty"`
}

// PlayerList is the JSONB-stored roster.
type PlayerList []Player

func (l PlayerList) Value() (driver.Value, error) {
	if l == nil {
		l = PlayerList{}
	}
	return json.Marshal(l)
}

func (l *PlayerList) Scan(value interface{}) error {
	if value == nil {
		*l = PlayerList{}
		return nil
	}
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, l)
}

// StringList is a JSONB-stored string array (requested equipment, channels).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, l)
}

// Booking reserves one court for one time window on one date. A partial
// unique index on (court, date, start) over active statuses, created in the
// migration, is the storage backstop for the no-double-booking invariant;
// the ledger's conflict query remains the primary guard.
type Booking struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BookingNumber string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"booking_number"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CourtID       uuid.UUID `gorm:"type:uuid;not null;index" json:"court_id"`

	BookingDate time.Time `gorm:"type:date;not null;index:idx_booking_date_start" json:"booking_date"`
	StartTime   string    `gorm:"type:varchar(5);not null;index:idx_booking_date_start" json:"start_time"` // HH:MM
	EndTime     string    `gorm:"type:varchar(5);not null" json:"end_time"`                                // HH:MM
	Duration    int       `gorm:"not null" json:"duration"`                                                // minutes

	BasePrice        decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"base_price"`
	PriceMultiplier  decimal.Decimal `gorm:"type:decimal(4,2);not null;default:1" json:"price_multiplier"`
	TotalPrice       decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"total_price"`
	CommissionRate   decimal.Decimal `gorm:"type:decimal(5,4);not null;default:0.1" json:"commission_rate"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0" json:"commission_amount"`
	VenueAmount      decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0" json:"venue_amount"`

	PlayerCount        int        `gorm:"not null;default:1" json:"player_count"`
	Players            PlayerList `gorm:"type:jsonb" json:"players,omitempty"`
	ContactName        string     `gorm:"type:varchar(100);not null" json:"contact_name"`
	ContactPhone       string     `gorm:"type:varchar(30);not null" json:"contact_phone"`
	ContactEmail       string     `gorm:"type:varchar(255)" json:"contact_email,omitempty"`
	SpecialRequests    string     `gorm:"type:text" json:"special_requests,omitempty"`
	EquipmentRequested StringList `gorm:"type:jsonb" json:"equipment_requested,omitempty"`

	Status        BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"payment_status"`

	CancelledAt        *time.Time       `json:"cancelled_at,omitempty"`
	CancellationReason string           `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledBy        CancelActor      `gorm:"type:varchar(10)" json:"cancelled_by,omitempty"`
	RefundAmount       *decimal.Decimal `gorm:"type:decimal(8,2)" json:"refund_amount,omitempty"`

	ConfirmedAt    *time.Time `json:"confirmed_at,omitempty"`
	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`
	CheckInAt      *time.Time `json:"check_in_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Court Court `gorm:"foreignKey:CourtID" json:"court,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// Window parses the booking's time boundaries.
func (b *Booking) Window() (timeslot.Range, error) {
	return timeslot.ParseRange(b.StartTime, b.EndTime)
}

// StartDateTime anchors the booking start on its calendar date.
func (b *Booking) StartDateTime() time.Time {
	start, err := timeslot.Parse(b.StartTime)
	if err != nil {
		return b.BookingDate
	}
	return start.At(b.BookingDate)
}

// EndDateTime anchors the booking end on its calendar date.
func (b *Booking) EndDateTime() time.Time {
	end, err := timeslot.Parse(b.EndTime)
	if err != nil {
		return b.BookingDate
	}
	return end.At(b.BookingDate)
}

// HoursUntilStart returns the (possibly negative) distance to kickoff.
func (b *Booking) HoursUntilStart(now time.Time) float64 {
	return b.StartDateTime().Sub(now).Hours()
}

// IsActive reports whether the booking still occupies its slot.
func (b *Booking) IsActive() bool {
	switch b.Status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusPaid:
		return true
	}
	return false
}

// IsTerminal reports whether the booking accepts no further transitions.
func (b *Booking) IsTerminal() bool {
	_, ok := bookingTransitions[b.Status]
	return !ok
}

// CanTransitionTo reports whether moving to the target status is a legal
// lifecycle edge.
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range bookingTransitions[b.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsUpcoming reports whether the booking has not started yet.
func (b *Booking) IsUpcoming(now time.Time) bool {
	return b.StartDateTime().After(now)
}

// IsPast reports whether the booking's window has fully elapsed.
func (b *Booking) IsPast(now time.Time) bool {
	return b.EndDateTime().Before(now)
}

// CanBeCancelled holds while the booking is active and starts more than the
// cancellation window from now. Admin/system overrides bypass this gate but
// still use CalculateRefund.
func (b *Booking) CanBeCancelled(now time.Time) bool {
	if !b.IsActive() {
		return false
	}
	return b.HoursUntilStart(now) >= cancellationWindowHours
}

// CalculateRefund applies the refund tiers: full with 24h or more of
// notice, half with 12h or more, nothing below that. Returns zero for
// bookings no longer occupying a slot (nothing left to refund).
func (b *Booking) CalculateRefund(now time.Time) decimal.Decimal {
	if !b.IsActive() {
		return decimal.Zero
	}

	hours := b.HoursUntilStart(now)
	switch {
	case hours >= 24:
		return b.TotalPrice
	case hours >= 12:
		return b.TotalPrice.Mul(decimal.NewFromFloat(0.5)).Round(2)
	default:
		return decimal.Zero
	}
}

// ShouldSendReminder is the pure predicate the reminder sweep evaluates:
// confirmed or paid, no reminder sent yet, within the 24h lead window and
// not already started.
func (b *Booking) ShouldSendReminder(now time.Time) bool {
	if b.Status != BookingStatusConfirmed && b.Status != BookingStatusPaid {
		return false
	}
	if b.ReminderSentAt != nil {
		return false
	}

	hours := b.HoursUntilStart(now)
	return hours > 0 && hours <= 24
}

// RecalculateAmounts re-derives commission and venue payout from the total
// price and the frozen commission rate. Must be called by every operation
// that changes either input; the commission identity
// (commission + venue == total) holds after every call.
func (b *Booking) RecalculateAmounts() {
	b.CommissionAmount = b.TotalPrice.Mul(b.CommissionRate).Round(2)
	b.VenueAmount = b.TotalPrice.Sub(b.CommissionAmount)
}

// ReminderDueAt is the instant the pre-game reminder should fire.
func (b *Booking) ReminderDueAt() time.Time {
	return b.StartDateTime().Add(-24 * time.Hour)
}
