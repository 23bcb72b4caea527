package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type DayRuleRequest struct {
	Open   string `json:"open" validate:"required_if=IsOpen true,omitempty,len=5"`
	Close  string `json:"close" validate:"required_if=IsOpen true,omitempty,len=5"`
	IsOpen bool   `json:"is_open"`
}

type UpdateAvailabilityRulesRequest struct {
	Monday    DayRuleRequest `json:"monday"`
	Tuesday   DayRuleRequest `json:"tuesday"`
	Wednesday DayRuleRequest `json:"wednesday"`
	Thursday  DayRuleRequest `json:"thursday"`
	Friday    DayRuleRequest `json:"friday"`
	Saturday  DayRuleRequest `json:"saturday"`
	Sunday    DayRuleRequest `json:"sunday"`
}

type DayPartMultipliersRequest struct {
	Morning   decimal.Decimal `json:"morning"`
	Afternoon decimal.Decimal `json:"afternoon"`
	Night     decimal.Decimal `json:"night"`
}

type UpdatePriceRulesRequest struct {
	BasePrice decimal.Decimal           `json:"base_price" validate:"required"`
	Weekday   DayPartMultipliersRequest `json:"weekday" validate:"required"`
	Weekend   DayPartMultipliersRequest `json:"weekend" validate:"required"`
}

type BlockSlotRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,len=5"`
	EndTime   string `json:"end_time" validate:"required,len=5"`
	Reason    string `json:"reason" validate:"omitempty,max=255"`
}

type UnblockSlotRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,len=5"`
}

type SetMaintenanceRequest struct {
	MaintenanceMode bool `json:"maintenance_mode"`
}

// Response DTOs

type SlotResponse struct {
	StartTime string          `json:"start_time"`
	EndTime   string          `json:"end_time"`
	Price     decimal.Decimal `json:"price"`
}

type DayAvailabilityResponse struct {
	Date   string         `json:"date"`
	IsOpen bool           `json:"is_open"`
	Slots  []SlotResponse `json:"slots"`
}

type AvailabilityRangeResponse struct {
	CourtID uuid.UUID                 `json:"court_id"`
	Days    []DayAvailabilityResponse `json:"days"`
}

type BlockedSlotResponse struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason,omitempty"`
}

type CourtSummaryResponse struct {
	ID          uuid.UUID `json:"id"`
	VenueID     uuid.UUID `json:"venue_id"`
	Name        string    `json:"name"`
	CourtType   string    `json:"court_type"`
	SurfaceType string    `json:"surface_type"`
	VenueName   string    `json:"venue_name,omitempty"`
}

type CourtResponse struct {
	ID          uuid.UUID `json:"id"`
	VenueID     uuid.UUID `json:"venue_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CourtType   string    `json:"court_type"`
	SurfaceType string    `json:"surface_type"`
	MaxPlayers  int       `json:"max_players"`

	BasePrice decimal.Decimal `json:"base_price"`

	MinBookingDuration int `json:"min_booking_duration"`
	MaxBookingDuration int `json:"max_booking_duration"`
	SlotDuration       int `json:"slot_duration"`
	AdvanceBookingDays int `json:"advance_booking_days"`

	IsActive        bool `json:"is_active"`
	IsAvailable     bool `json:"is_available"`
	MaintenanceMode bool `json:"maintenance_mode"`

	BlockedSlots []BlockedSlotResponse `json:"blocked_slots,omitempty"`

	TotalBookings int             `json:"total_bookings"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
