package timeslot

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:00", 480, false},
		{"12:30", 750, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"8:00", 480, false}, // time.Parse accepts single-digit hours
		{"08:60", 0, true},
		{"morning", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	if got := MustParse("09:05").String(); got != "09:05" {
		t.Errorf("String() = %q, want %q", got, "09:05")
	}
	if got := MustParse("23:00").Add(30).String(); got != "23:30" {
		t.Errorf("Add(30).String() = %q, want %q", got, "23:30")
	}
}

func TestAt(t *testing.T) {
	date := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	got := MustParse("19:30").At(date)
	want := time.Date(2024, 6, 15, 19, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("At() = %v, want %v", got, want)
	}
}

func TestRangeOverlaps(t *testing.T) {
	base := Range{MustParse("10:00"), MustParse("11:00")}

	tests := []struct {
		name  string
		other Range
		want  bool
	}{
		{"identical", Range{MustParse("10:00"), MustParse("11:00")}, true},
		{"contained", Range{MustParse("10:15"), MustParse("10:45")}, true},
		{"overlap left edge", Range{MustParse("09:30"), MustParse("10:30")}, true},
		{"overlap right edge", Range{MustParse("10:30"), MustParse("11:30")}, true},
		{"covering", Range{MustParse("09:00"), MustParse("12:00")}, true},
		{"back-to-back before", Range{MustParse("09:00"), MustParse("10:00")}, false},
		{"back-to-back after", Range{MustParse("11:00"), MustParse("12:00")}, false},
		{"disjoint", Range{MustParse("13:00"), MustParse("14:00")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps(%v) = %v, want %v", tt.other, got, tt.want)
			}
			// overlap is symmetric
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("reverse Overlaps(%v) = %v, want %v", base, got, tt.want)
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	open := Range{MustParse("08:00"), MustParse("23:00")}

	if !open.Contains(Range{MustParse("22:00"), MustParse("23:00")}) {
		t.Error("slot ending exactly at close should fit inside the open window")
	}
	if open.Contains(Range{MustParse("22:30"), MustParse("23:30")}) {
		t.Error("slot running past close must not fit")
	}
	if open.Contains(Range{MustParse("07:30"), MustParse("08:30")}) {
		t.Error("slot starting before open must not fit")
	}
}

func TestRangeDuration(t *testing.T) {
	r, err := ParseRange("08:00", "09:30")
	if err != nil {
		t.Fatalf("ParseRange: %v", err)
	}
	if r.Duration() != 90 {
		t.Errorf("Duration() = %d, want 90", r.Duration())
	}
	if !r.IsValid() {
		t.Error("range should be valid")
	}
	if (Range{MustParse("10:00"), MustParse("10:00")}).IsValid() {
		t.Error("empty range should be invalid")
	}
}
