package dto

import (
	"testing"

	"github.com/Ariel200609/TuTurnoYa/pkg/validator"

	"github.com/google/uuid"
)

func validCreateBookingRequest() CreateBookingRequest {
	return CreateBookingRequest{
		CourtID:      uuid.New(),
		BookingDate:  "2024-06-15",
		StartTime:    "19:00",
		Duration:     60,
		ContactName:  "Ariel Montoya",
		ContactPhone: "+54 9 291 555-0000",
	}
}

// Fútbol 11 tops out at 22 players on the court, so that is the hard
// ceiling regardless of the court type booked.
func TestCreateBookingRequestPlayerCountBounds(t *testing.T) {
	v := validator.NewValidator()

	cases := []struct {
		name    string
		count   int
		wantErr bool
	}{
		{"omitted", 0, false},
		{"solo", 1, false},
		{"full futbol 11", 22, false},
		{"over the ceiling", 23, true},
		{"negative", -3, true},
	}

	for _, tc := range cases {
		req := validCreateBookingRequest()
		req.PlayerCount = tc.count
		err := v.Validate(&req)
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: player_count=%d err=%v, wantErr=%t", tc.name, tc.count, err, tc.wantErr)
		}
	}
}
