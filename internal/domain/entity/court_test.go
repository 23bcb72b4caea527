package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/Ariel200609/TuTurnoYa/pkg/timeslot"

	"github.com/shopspring/decimal"
)

func testCourt() *Court {
	return &Court{
		BasePrice:          decimal.NewFromInt(3000),
		PriceRules:         DefaultPriceRules(),
		AvailabilityRules:  DefaultWeeklyAvailability(),
		MinBookingDuration: 60,
		MaxBookingDuration: 120,
		SlotDuration:       60,
		AdvanceBookingDays: 30,
		IsActive:           true,
		IsAvailable:        true,
	}
}

// 2024-06-15 is a Saturday.
var saturday = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

// 2024-06-17 is a Monday.
var monday = time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)

func TestDayPartFor(t *testing.T) {
	tests := []struct {
		start string
		want  DayPart
	}{
		{"00:00", DayPartMorning},
		{"11:59", DayPartMorning},
		{"12:00", DayPartAfternoon},
		{"17:59", DayPartAfternoon},
		{"18:00", DayPartNight},
		{"23:00", DayPartNight},
	}

	for _, tt := range tests {
		if got := DayPartFor(timeslot.MustParse(tt.start)); got != tt.want {
			t.Errorf("DayPartFor(%s) = %s, want %s", tt.start, got, tt.want)
		}
	}
}

func TestCalculatePrice(t *testing.T) {
	court := testCourt()

	// Saturday 19:00 hits the weekend/night multiplier 1.4:
	// 3000 * 1.4 * 1h = 4200.00
	price, err := court.CalculatePrice(saturday, timeslot.MustParse("19:00"), 60)
	if err != nil {
		t.Fatalf("CalculatePrice: %v", err)
	}
	if price.StringFixed(2) != "4200.00" {
		t.Errorf("weekend night price = %s, want 4200.00", price.StringFixed(2))
	}

	// Repeated call is byte-identical.
	again, err := court.CalculatePrice(saturday, timeslot.MustParse("19:00"), 60)
	if err != nil {
		t.Fatalf("CalculatePrice: %v", err)
	}
	if price.StringFixed(2) != again.StringFixed(2) {
		t.Errorf("price not deterministic: %s vs %s", price.StringFixed(2), again.StringFixed(2))
	}

	// Monday 11:00–12:30 straddles the noon boundary but is priced entirely
	// at the start-time bucket (weekday/morning 0.8): 3000 * 0.8 * 1.5h.
	price, err = court.CalculatePrice(monday, timeslot.MustParse("11:00"), 90)
	if err != nil {
		t.Fatalf("CalculatePrice: %v", err)
	}
	if price.StringFixed(2) != "3600.00" {
		t.Errorf("straddling slot priced %s, want 3600.00 (start-hour bucket for whole window)", price.StringFixed(2))
	}
}

func TestCalculatePriceRounding(t *testing.T) {
	court := testCourt()
	court.BasePrice = decimal.RequireFromString("999.99")

	// 999.99 * 1.2 * 0.5h = 599.994 → rounds half-up once, at the end.
	price, err := court.CalculatePrice(monday, timeslot.MustParse("19:00"), 30)
	if err != nil {
		t.Fatalf("CalculatePrice: %v", err)
	}
	if price.StringFixed(2) != "599.99" {
		t.Errorf("price = %s, want 599.99", price.StringFixed(2))
	}
}

func TestMultiplierMissingFailsFast(t *testing.T) {
	court := testCourt()
	court.PriceRules.Weekend.Night = decimal.Zero

	_, err := court.CalculatePrice(saturday, timeslot.MustParse("19:00"), 60)
	if !errors.Is(err, ErrPriceRuleNotConfigured) {
		t.Errorf("expected ErrPriceRuleNotConfigured, got %v", err)
	}
}

func TestAvailableSlots(t *testing.T) {
	court := testCourt()
	court.BlockedSlots = BlockedSlotList{
		{Date: "2024-06-15", StartTime: "12:00", EndTime: "13:00", Reason: "Mantenimiento"},
	}

	slots, err := court.AvailableSlots(saturday)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}

	// Open 08:00–23:00 with 60-minute slots gives 15 candidates; the
	// blocked noon hour removes one.
	if len(slots) != 14 {
		t.Fatalf("got %d slots, want 14", len(slots))
	}

	prev := ""
	for _, slot := range slots {
		if slot.StartTime == "12:00" {
			t.Error("blocked 12:00 slot should be absent")
		}
		if slot.StartTime <= prev {
			t.Errorf("slots out of order: %s after %s", slot.StartTime, prev)
		}
		prev = slot.StartTime

		start := timeslot.MustParse(slot.StartTime)
		want, err := court.CalculatePrice(saturday, start, court.SlotDuration)
		if err != nil {
			t.Fatalf("CalculatePrice(%s): %v", slot.StartTime, err)
		}
		if !slot.Price.Equal(want) {
			t.Errorf("slot %s priced %s, want %s", slot.StartTime, slot.Price, want)
		}
	}

	// First and last slot boundaries.
	if slots[0].StartTime != "08:00" {
		t.Errorf("first slot %s, want 08:00", slots[0].StartTime)
	}
	if slots[len(slots)-1].EndTime != "23:00" {
		t.Errorf("last slot ends %s, want 23:00", slots[len(slots)-1].EndTime)
	}
}

func TestAvailableSlotsClosedDay(t *testing.T) {
	court := testCourt()
	court.AvailabilityRules.Saturday.IsOpen = false

	slots, err := court.AvailableSlots(saturday)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("closed day produced %d slots", len(slots))
	}
}

func TestIsAvailableAt(t *testing.T) {
	court := testCourt()
	court.BlockedSlots = BlockedSlotList{
		{Date: "2024-06-15", StartTime: "10:00", EndTime: "12:00", Reason: "torneo"},
	}

	window := func(start, end string) timeslot.Range {
		return timeslot.NewRange(timeslot.MustParse(start), timeslot.MustParse(end))
	}

	if court.IsAvailableAt(saturday, window("07:00", "08:00")) {
		t.Error("window before opening should be unavailable")
	}
	if court.IsAvailableAt(saturday, window("22:30", "23:30")) {
		t.Error("window past closing should be unavailable")
	}
	if !court.IsAvailableAt(saturday, window("22:00", "23:00")) {
		t.Error("window ending exactly at close should be available")
	}
	if court.IsAvailableAt(saturday, window("11:00", "13:00")) {
		t.Error("window overlapping the blocked range should be unavailable")
	}
	if !court.IsAvailableAt(saturday, window("12:00", "13:00")) {
		t.Error("window starting exactly at block end should be available")
	}
	if !court.IsAvailableAt(monday, window("10:00", "12:00")) {
		t.Error("block is date-scoped; other dates stay available")
	}
}

func TestIsBookable(t *testing.T) {
	court := testCourt()
	if !court.IsBookable() {
		t.Error("default test court should be bookable")
	}
	court.MaintenanceMode = true
	if court.IsBookable() {
		t.Error("court in maintenance must not be bookable")
	}
}
