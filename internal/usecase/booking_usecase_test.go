package usecase

import (
	"reflect"
	"testing"
	"time"

	"github.com/Ariel200609/TuTurnoYa/internal/delivery/dto"
	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"
	"github.com/Ariel200609/TuTurnoYa/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubCounterRepo struct {
	calls *[]string
	seq   int
}

func (s stubCounterRepo) NextSequence(tx *gorm.DB, date time.Time) (int, error) {
	*s.calls = append(*s.calls, "counter")
	return s.seq, nil
}

type stubBookingRepo struct {
	repository.BookingRepository
	calls     *[]string
	conflicts []entity.Booking
	created   *entity.Booking
}

func (s *stubBookingRepo) FindConflicting(db *gorm.DB, courtID uuid.UUID, date time.Time, startTime, endTime string, excludeID *uuid.UUID) ([]entity.Booking, error) {
	*s.calls = append(*s.calls, "conflicts")
	return s.conflicts, nil
}

func (s *stubBookingRepo) Create(db *gorm.DB, booking *entity.Booking) error {
	*s.calls = append(*s.calls, "create")
	s.created = booking
	return nil
}

// Concurrent creators for the same day serialize on the counter row lock,
// so the lock has to be acquired before the conflict query runs. Otherwise
// two overlapping windows with different start times slip past each other.
func TestReserveSlotLocksCounterBeforeConflictCheck(t *testing.T) {
	var calls []string
	u := &bookingUsecase{
		bookingRepo: &stubBookingRepo{calls: &calls},
		counterRepo: stubCounterRepo{calls: &calls, seq: 7},
	}

	booking := &entity.Booking{
		CourtID:     uuid.New(),
		BookingDate: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "12:00",
	}
	if err := u.reserveSlot(nil, booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"counter", "conflicts", "create"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("call order = %v, want %v", calls, want)
	}
	if booking.BookingNumber != "TY-20240615-0007" {
		t.Errorf("booking number = %q, want TY-20240615-0007", booking.BookingNumber)
	}
}

func TestReserveSlotRejectsOverlap(t *testing.T) {
	var calls []string
	repo := &stubBookingRepo{
		calls: &calls,
		conflicts: []entity.Booking{
			{StartTime: "10:00", EndTime: "12:00", Status: entity.BookingStatusConfirmed},
		},
	}
	u := &bookingUsecase{
		bookingRepo: repo,
		counterRepo: stubCounterRepo{calls: &calls, seq: 2},
	}

	booking := &entity.Booking{
		CourtID:     uuid.New(),
		BookingDate: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		StartTime:   "11:00",
		EndTime:     "13:00",
	}
	if err := u.reserveSlot(nil, booking); err != ErrBookingConflict {
		t.Fatalf("err = %v, want ErrBookingConflict", err)
	}
	if repo.created != nil {
		t.Error("conflicting booking must not be inserted")
	}
}

func TestListRequestToFilter(t *testing.T) {
	req := &dto.ListBookingsRequest{
		Status:   "confirmed",
		CourtID:  "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
		DateFrom: "2024-06-01",
		DateTo:   "2024-06-30",
		Page:     2,
		Limit:    25,
	}

	filter, err := listRequestToFilter(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filter.Status == nil || *filter.Status != entity.BookingStatusConfirmed {
		t.Errorf("status not carried over: %v", filter.Status)
	}
	if filter.CourtID == nil {
		t.Error("court id not carried over")
	}
	if filter.DateFrom == nil || filter.DateFrom.Format("2006-01-02") != "2024-06-01" {
		t.Errorf("date_from not carried over: %v", filter.DateFrom)
	}
	if filter.Offset() != 25 {
		t.Errorf("Offset() = %d, want 25", filter.Offset())
	}
	if filter.PageSize() != 25 {
		t.Errorf("PageSize() = %d, want 25", filter.PageSize())
	}
}

func TestListRequestToFilterEmpty(t *testing.T) {
	filter, err := listRequestToFilter(&dto.ListBookingsRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filter.Status != nil || filter.CourtID != nil || filter.DateFrom != nil || filter.DateTo != nil {
		t.Error("empty request should produce an empty filter")
	}
	if filter.PageSize() != 10 {
		t.Errorf("default PageSize() = %d, want 10", filter.PageSize())
	}
	if filter.Offset() != 0 {
		t.Errorf("default Offset() = %d, want 0", filter.Offset())
	}
}

func TestListRequestToFilterRejectsBadValues(t *testing.T) {
	cases := []dto.ListBookingsRequest{
		{CourtID: "not-a-uuid"},
		{DateFrom: "June 1st"},
		{DateTo: "2024-13-99"},
	}

	for _, req := range cases {
		if _, err := listRequestToFilter(&req); err != ErrInvalidFilter {
			t.Errorf("listRequestToFilter(%+v) err = %v, want ErrInvalidFilter", req, err)
		}
	}
}
