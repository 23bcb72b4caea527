package repository

import (
	"testing"

	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

// The transition write carries the expected status in the WHERE clause, so
// a booking moved by a concurrent operator reports zero rows instead of
// being overwritten.
func TestTransitionStatusGuardsOnCurrentStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository()
	id := uuid.New()

	mock.ExpectExec(`UPDATE "bookings" SET .* WHERE id = .* AND status IN`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows, err := repo.TransitionStatus(db, id,
		[]entity.BookingStatus{entity.BookingStatusPending},
		map[string]interface{}{"status": entity.BookingStatusConfirmed})
	if err != nil {
		t.Fatalf("TransitionStatus: %v", err)
	}
	if rows != 0 {
		t.Errorf("rows = %d, want 0 for a stale status", rows)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
