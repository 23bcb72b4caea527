package timeslot

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTime is returned when a time string is not in HH:MM form.
var ErrInvalidTime = errors.New("invalid time format, use HH:MM")

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
// Booking windows are stored as "HH:MM" strings; this type carries the
// arithmetic for them.
type TimeOfDay int

// Parse converts an "HH:MM" string into a TimeOfDay.
func Parse(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTime
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// MustParse is Parse for compile-time-known literals. Panics on bad input.
func MustParse(s string) TimeOfDay {
	t, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("timeslot: %q: %v", s, err))
	}
	return t
}

func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Add returns the time shifted by the given number of minutes.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

// MinutesUntil returns the distance to other in minutes (negative if other
// is earlier).
func (t TimeOfDay) MinutesUntil(other TimeOfDay) int {
	return int(other - t)
}

// At anchors the time of day onto a calendar date in the date's location.
func (t TimeOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

// Range is a half-open interval [Start, End) within a single day.
type Range struct {
	Start TimeOfDay
	End   TimeOfDay
}

func NewRange(start, end TimeOfDay) Range {
	return Range{Start: start, End: end}
}

// ParseRange builds a Range from two "HH:MM" strings.
func ParseRange(start, end string) (Range, error) {
	s, err := Parse(start)
	if err != nil {
		return Range{}, err
	}
	e, err := Parse(end)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: s, End: e}, nil
}

// Duration returns the range length in minutes.
func (r Range) Duration() int {
	return int(r.End - r.Start)
}

// IsValid reports whether the range has positive length.
func (r Range) IsValid() bool {
	return r.End > r.Start
}

// Overlaps reports whether two half-open intervals intersect. Back-to-back
// ranges (one ending exactly when the next starts) do not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && r.End > other.Start
}

// Contains reports whether other lies fully inside r (closed on both ends,
// so a slot ending exactly at closing time still fits).
func (r Range) Contains(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}
