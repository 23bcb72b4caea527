package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/Ariel200609/TuTurnoYa/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrPriceRuleNotConfigured is returned when the multiplier table has no
// entry for the requested day-type/day-part bucket. This is a facility
// misconfiguration and must never be defaulted over.
var ErrPriceRuleNotConfigured = errors.New("price rule not configured for this time bucket")

// DayPart buckets a start time into the pricing table rows.
type DayPart string

const (
	DayPartMorning   DayPart = "morning"   // before 12:00
	DayPartAfternoon DayPart = "afternoon" // 12:00–17:59
	DayPartNight     DayPart = "night"     // 18:00 onwards
)

// DayPartFor classifies a start time by its hour component.
func DayPartFor(start timeslot.TimeOfDay) DayPart {
	switch hour := start.Hour(); {
	case hour < 12:
		return DayPartMorning
	case hour >= 18:
		return DayPartNight
	default:
		return DayPartAfternoon
	}
}

// DayRule is one weekday's open/close window.
type DayRule struct {
	Open   string `json:"open"`  // HH:MM
	Close  string `json:"close"` // HH:MM
	IsOpen bool   `json:"is_open"`
}

// Window parses the rule's open/close strings into a time range.
func (r DayRule) Window() (timeslot.Range, error) {
	return timeslot.ParseRange(r.Open, r.Close)
}

// WeeklyAvailability holds one DayRule per weekday. A fixed-shape struct
// rather than a string-keyed map so a missing day is impossible by
// construction.
type WeeklyAvailability struct {
	Monday    DayRule `json:"monday"`
	Tuesday   DayRule `json:"tuesday"`
	Wednesday DayRule `json:"wednesday"`
	Thursday  DayRule `json:"thursday"`
	Friday    DayRule `json:"friday"`
	Saturday  DayRule `json:"saturday"`
	Sunday    DayRule `json:"sunday"`
}

// Rule returns the window for a weekday.
func (w WeeklyAvailability) Rule(day time.Weekday) DayRule {
	switch day {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

func (w WeeklyAvailability) Value() (driver.Value, error) {
	return json.Marshal(w)
}

func (w *WeeklyAvailability) Scan(value interface{}) error {
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, w)
}

// DayPartMultipliers maps the three day parts to price multipliers. A zero
// multiplier means the bucket was never configured.
type DayPartMultipliers struct {
	Morning   decimal.Decimal `json:"morning"`
	Afternoon decimal.Decimal `json:"afternoon"`
	Night     decimal.Decimal `json:"night"`
}

func (m DayPartMultipliers) forPart(part DayPart) decimal.Decimal {
	switch part {
	case DayPartMorning:
		return m.Morning
	case DayPartNight:
		return m.Night
	default:
		return m.Afternoon
	}
}

// PriceRules is the 2x3 multiplier table applied to the court's base price.
type PriceRules struct {
	Weekday DayPartMultipliers `json:"weekday"`
	Weekend DayPartMultipliers `json:"weekend"`
}

func (p PriceRules) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PriceRules) Scan(value interface{}) error {
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, p)
}

// BlockedSlot is an ad-hoc blackout window for a single date.
type BlockedSlot struct {
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
	Reason    string `json:"reason"`
}

// Range parses the blocked window's times.
func (b BlockedSlot) Range() (timeslot.Range, error) {
	return timeslot.ParseRange(b.StartTime, b.EndTime)
}

// BlockedSlotList is the ordered sequence of blackout windows on a court.
type BlockedSlotList []BlockedSlot

func (l BlockedSlotList) Value() (driver.Value, error) {
	if l == nil {
		l = BlockedSlotList{}
	}
	return json.Marshal(l)
}

func (l *BlockedSlotList) Scan(value interface{}) error {
	if value == nil {
		*l = BlockedSlotList{}
		return nil
	}
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, l)
}

// Court is a bookable playing field owned by a venue. Its rule columns are
// the single source of truth for slot generation and pricing.
type Court struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	VenueID     uuid.UUID `gorm:"type:uuid;not null;index" json:"venue_id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CourtType   string    `gorm:"type:varchar(50);not null;default:'Fútbol 5'" json:"court_type"`
	SurfaceType string    `gorm:"type:varchar(50);not null;default:'Césped Sintético'" json:"surface_type"`
	MaxPlayers  int       `gorm:"not null;default:10" json:"max_players"`

	BasePrice  decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"base_price"`
	PriceRules PriceRules      `gorm:"type:jsonb" json:"price_rules"`

	MinBookingDuration int `gorm:"not null;default:60" json:"min_booking_duration"`  // minutes
	MaxBookingDuration int `gorm:"not null;default:120" json:"max_booking_duration"` // minutes
	SlotDuration       int `gorm:"not null;default:60" json:"slot_duration"`         // minutes
	AdvanceBookingDays int `gorm:"not null;default:30" json:"advance_booking_days"`

	AvailabilityRules WeeklyAvailability `gorm:"type:jsonb" json:"availability_rules"`
	BlockedSlots      BlockedSlotList    `gorm:"type:jsonb" json:"blocked_slots"`

	IsActive        bool `gorm:"not null;default:true" json:"is_active"`
	IsAvailable     bool `gorm:"not null;default:true" json:"is_available"`
	MaintenanceMode bool `gorm:"not null;default:false" json:"maintenance_mode"`

	// Statistics counters, incremented atomically on booking completion.
	TotalBookings int             `gorm:"not null;default:0" json:"total_bookings"`
	TotalRevenue  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_revenue"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Venue Venue `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
}

func (Court) TableName() string {
	return "courts"
}

// IsBookable reports whether the court accepts bookings at all.
func (c *Court) IsBookable() bool {
	return c.IsActive && c.IsAvailable && !c.MaintenanceMode
}

// DayRuleFor returns the availability rule for a date's weekday.
func (c *Court) DayRuleFor(date time.Time) DayRule {
	return c.AvailabilityRules.Rule(date.Weekday())
}

// IsOpenOn reports whether the court opens at all on the given date.
func (c *Court) IsOpenOn(date time.Time) bool {
	return c.DayRuleFor(date).IsOpen
}

// IsWeekend classifies a date for the price rule table.
func IsWeekend(date time.Time) bool {
	day := date.Weekday()
	return day == time.Saturday || day == time.Sunday
}

// MultiplierFor looks up the price multiplier for a date and start time.
// A missing bucket is a configuration error, never silently defaulted.
func (c *Court) MultiplierFor(date time.Time, start timeslot.TimeOfDay) (decimal.Decimal, error) {
	table := c.PriceRules.Weekday
	if IsWeekend(date) {
		table = c.PriceRules.Weekend
	}

	multiplier := table.forPart(DayPartFor(start))
	if multiplier.IsZero() {
		return decimal.Zero, ErrPriceRuleNotConfigured
	}
	return multiplier, nil
}

// CalculatePrice prices a booking window. The multiplier of the start time
// applies to the whole duration; rounding to 2 decimals happens once at the
// end, half-up.
func (c *Court) CalculatePrice(date time.Time, start timeslot.TimeOfDay, durationMinutes int) (decimal.Decimal, error) {
	multiplier, err := c.MultiplierFor(date, start)
	if err != nil {
		return decimal.Zero, err
	}

	hours := decimal.NewFromInt(int64(durationMinutes)).Div(decimal.NewFromInt(60))
	return c.BasePrice.Mul(multiplier).Mul(hours).Round(2), nil
}

// IsBlocked reports whether any blackout window on the given date overlaps
// the half-open range.
func (c *Court) IsBlocked(date time.Time, window timeslot.Range) bool {
	dateStr := date.Format("2006-01-02")
	for _, blocked := range c.BlockedSlots {
		if blocked.Date != dateStr {
			continue
		}
		blockedRange, err := blocked.Range()
		if err != nil {
			continue
		}
		if window.Overlaps(blockedRange) {
			return true
		}
	}
	return false
}

// IsAvailableAt reports whether the window lies inside the day's open hours
// and clear of blackout windows. Existing bookings are checked separately by
// the ledger.
func (c *Court) IsAvailableAt(date time.Time, window timeslot.Range) bool {
	rule := c.DayRuleFor(date)
	if !rule.IsOpen {
		return false
	}

	open, err := rule.Window()
	if err != nil {
		return false
	}
	if !open.Contains(window) {
		return false
	}

	return !c.IsBlocked(date, window)
}

// Slot is one candidate bookable interval with its computed price.
type Slot struct {
	StartTime string          `json:"start_time"`
	EndTime   string          `json:"end_time"`
	Price     decimal.Decimal `json:"price"`
}

// Window parses the slot boundaries.
func (s Slot) Window() (timeslot.Range, error) {
	return timeslot.ParseRange(s.StartTime, s.EndTime)
}

// AvailableSlots generates the day's candidate slots: stepping from open to
// close by SlotDuration, keeping slots inside the open window and clear of
// blackouts, ascending by start time. The result is recomputed fresh on
// every call. Conflicts with existing bookings are filtered by the caller.
func (c *Court) AvailableSlots(date time.Time) ([]Slot, error) {
	rule := c.DayRuleFor(date)
	if !rule.IsOpen {
		return nil, nil
	}

	open, err := rule.Window()
	if err != nil || !open.IsValid() {
		return nil, err
	}

	var slots []Slot
	for start := open.Start; start.Add(c.SlotDuration) <= open.End; start = start.Add(c.SlotDuration) {
		window := timeslot.NewRange(start, start.Add(c.SlotDuration))
		if c.IsBlocked(date, window) {
			continue
		}

		price, err := c.CalculatePrice(date, start, c.SlotDuration)
		if err != nil {
			return nil, err
		}

		slots = append(slots, Slot{
			StartTime: window.Start.String(),
			EndTime:   window.End.String(),
			Price:     price,
		})
	}

	return slots, nil
}

// DefaultWeeklyAvailability opens every day 08:00–23:00, matching the
// marketplace's standard operating hours.
func DefaultWeeklyAvailability() WeeklyAvailability {
	allDay := DayRule{Open: "08:00", Close: "23:00", IsOpen: true}
	return WeeklyAvailability{
		Monday:    allDay,
		Tuesday:   allDay,
		Wednesday: allDay,
		Thursday:  allDay,
		Friday:    allDay,
		Saturday:  allDay,
		Sunday:    allDay,
	}
}

// DefaultPriceRules is the standard multiplier table for newly created
// courts: cheaper weekday mornings, premium weekend nights.
func DefaultPriceRules() PriceRules {
	return PriceRules{
		Weekday: DayPartMultipliers{
			Morning:   decimal.NewFromFloat(0.8),
			Afternoon: decimal.NewFromInt(1),
			Night:     decimal.NewFromFloat(1.2),
		},
		Weekend: DayPartMultipliers{
			Morning:   decimal.NewFromInt(1),
			Afternoon: decimal.NewFromFloat(1.2),
			Night:     decimal.NewFromFloat(1.4),
		},
	}
}
