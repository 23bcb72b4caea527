package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type PlayerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	Position string `json:"position" validate:"omitempty,max=50"`
}

type CreateBookingRequest struct {
	CourtID            uuid.UUID       `json:"court_id" validate:"required"`
	BookingDate        string          `json:"booking_date" validate:"required,datetime=2006-01-02"`
	StartTime          string          `json:"start_time" validate:"required,len=5"`
	Duration           int             `json:"duration" validate:"required,min=30,max=480"`
	PlayerCount        int             `json:"player_count" validate:"omitempty,min=1,max=22"`
	Players            []PlayerRequest `json:"players" validate:"omitempty,dive"`
	ContactName        string          `json:"contact_name" validate:"required,max=100"`
	ContactPhone       string          `json:"contact_phone" validate:"required,max=30"`
	ContactEmail       string          `json:"contact_email" validate:"omitempty,email"`
	SpecialRequests    string          `json:"special_requests" validate:"omitempty,max=1000"`
	EquipmentRequested []string        `json:"equipment_requested" validate:"omitempty,dive,max=100"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type ListBookingsRequest struct {
	Status   string `json:"status" validate:"omitempty,oneof=pending confirmed paid cancelled rejected completed no_show"`
	CourtID  string `json:"court_id" validate:"omitempty,uuid"`
	DateFrom string `json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `json:"date_to" validate:"omitempty,datetime=2006-01-02"`
	Page     int    `json:"page" validate:"omitempty,min=1"`
	Limit    int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

// Response DTOs

type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	BookingNumber string    `json:"booking_number"`
	UserID        uuid.UUID `json:"user_id"`
	CourtID       uuid.UUID `json:"court_id"`

	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Duration    int    `json:"duration"`

	BasePrice        decimal.Decimal `json:"base_price"`
	PriceMultiplier  decimal.Decimal `json:"price_multiplier"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	VenueAmount      decimal.Decimal `json:"venue_amount"`

	PlayerCount        int             `json:"player_count"`
	Players            []PlayerRequest `json:"players,omitempty"`
	ContactName        string          `json:"contact_name"`
	ContactPhone       string          `json:"contact_phone"`
	ContactEmail       string          `json:"contact_email,omitempty"`
	SpecialRequests    string          `json:"special_requests,omitempty"`
	EquipmentRequested []string        `json:"equipment_requested,omitempty"`

	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`

	CancelledAt        *time.Time       `json:"cancelled_at,omitempty"`
	CancellationReason string           `json:"cancellation_reason,omitempty"`
	CancelledBy        string           `json:"cancelled_by,omitempty"`
	RefundAmount       *decimal.Decimal `json:"refund_amount,omitempty"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CheckInAt   *time.Time `json:"check_in_at,omitempty"`

	Court *CourtSummaryResponse `json:"court,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

type CancelBookingResponse struct {
	Booking      *BookingResponse `json:"booking"`
	RefundAmount decimal.Decimal  `json:"refund_amount"`
}

// DaySheetEntry is one row in a venue owner's daily schedule.
type DaySheetEntry struct {
	Booking     BookingResponse `json:"booking"`
	ContactName string          `json:"contact_name"`
	PlayerCount int             `json:"player_count"`
}

type DaySheetResponse struct {
	CourtID  uuid.UUID       `json:"court_id"`
	Date     string          `json:"date"`
	Bookings []DaySheetEntry `json:"bookings"`
	Total    int             `json:"total"`
}
