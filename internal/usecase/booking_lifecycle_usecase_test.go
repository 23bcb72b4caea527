package usecase

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/Ariel200609/TuTurnoYa/internal/delivery/http/middleware"
	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"
	"github.com/Ariel200609/TuTurnoYa/internal/domain/repository"
	"github.com/Ariel200609/TuTurnoYa/pkg/clock"
	"github.com/Ariel200609/TuTurnoYa/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

type noopNotifier struct{}

func (noopNotifier) BookingPending(context.Context, *entity.Booking, *entity.Venue)   {}
func (noopNotifier) BookingConfirmed(context.Context, *entity.Booking)                {}
func (noopNotifier) BookingRejected(context.Context, *entity.Booking, string)         {}
func (noopNotifier) BookingCancelled(context.Context, *entity.Booking, *entity.Venue) {}
func (noopNotifier) BookingReminder(context.Context, *entity.Booking)                 {}
func (noopNotifier) ReviewRequest(context.Context, *entity.Booking)                   {}

type stubLifecycleRepo struct {
	repository.BookingRepository
	booking *entity.Booking
	rows    int64
	from    []entity.BookingStatus
	updates map[string]interface{}
}

func (s *stubLifecycleRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	return s.booking, nil
}

func (s *stubLifecycleRepo) TransitionStatus(db *gorm.DB, id uuid.UUID, from []entity.BookingStatus, updates map[string]interface{}) (int64, error) {
	s.from = from
	s.updates = updates
	return s.rows, nil
}

func dummyDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{})
	if err != nil {
		t.Fatalf("open dummy db: %v", err)
	}
	return db
}

func ownerContext(ownerID uuid.UUID) context.Context {
	ctx := context.WithValue(context.Background(), middleware.ActorIDKey, ownerID)
	return context.WithValue(ctx, middleware.ActorTypeKey, jwt.ActorVenueOwner)
}

func newLifecycleUsecase(t *testing.T, repo *stubLifecycleRepo) *bookingLifecycleUsecase {
	t.Helper()
	return &bookingLifecycleUsecase{
		db:           dummyDB(t),
		log:          logrus.New(),
		clock:        clock.NewFixed(time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC)),
		bookingRepo:  repo,
		notification: noopNotifier{},
	}
}

func pendingBooking(ownerID uuid.UUID) *entity.Booking {
	booking := &entity.Booking{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Status:      entity.BookingStatusPending,
		BookingDate: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		StartTime:   "19:00",
		EndTime:     "20:00",
	}
	booking.Court.Venue.OwnerID = ownerID
	return booking
}

func TestConfirmBookingWritesGuardedOnPending(t *testing.T) {
	ownerID := uuid.New()
	repo := &stubLifecycleRepo{booking: pendingBooking(ownerID), rows: 1}
	u := newLifecycleUsecase(t, repo)

	resp, err := u.ConfirmBooking(ownerContext(ownerID), repo.booking.ID)
	if err != nil {
		t.Fatalf("ConfirmBooking: %v", err)
	}
	if resp.Status != string(entity.BookingStatusConfirmed) {
		t.Errorf("status = %s, want confirmed", resp.Status)
	}

	wantFrom := []entity.BookingStatus{entity.BookingStatusPending}
	if !reflect.DeepEqual(repo.from, wantFrom) {
		t.Errorf("guard statuses = %v, want %v", repo.from, wantFrom)
	}
	if repo.updates["status"] != entity.BookingStatusConfirmed {
		t.Errorf("written status = %v, want confirmed", repo.updates["status"])
	}
}

// A cancel that lands between the read and the write leaves zero affected
// rows; the confirm must surface that instead of resurrecting the booking.
func TestConfirmBookingLosesToConcurrentTransition(t *testing.T) {
	ownerID := uuid.New()
	repo := &stubLifecycleRepo{booking: pendingBooking(ownerID), rows: 0}
	u := newLifecycleUsecase(t, repo)

	if _, err := u.ConfirmBooking(ownerContext(ownerID), repo.booking.ID); err != ErrInvalidTransition {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}
