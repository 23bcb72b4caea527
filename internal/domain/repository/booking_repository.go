package repository

import (
	"time"

	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID, filter entity.BookingFilter) ([]entity.Booking, int64, error)
	FindByCourtAndDate(db *gorm.DB, courtID uuid.UUID, date time.Time, statuses []entity.BookingStatus) ([]entity.Booking, error)
	FindActiveInDateRange(db *gorm.DB, courtID uuid.UUID, from, to time.Time) ([]entity.Booking, error)
	// FindConflicting returns active bookings whose half-open [start, end)
	// window intersects the candidate window on the given court and date.
	// excludeID skips one booking during update flows.
	FindConflicting(db *gorm.DB, courtID uuid.UUID, date time.Time, startTime, endTime string, excludeID *uuid.UUID) ([]entity.Booking, error)
	// FindReminderDue lists confirmed/paid bookings starting within the
	// next 24 hours that have not been reminded yet.
	FindReminderDue(db *gorm.DB, now time.Time) ([]entity.Booking, error)
	// FindNoShowCandidates lists confirmed bookings (never paid, never
	// checked in) whose end time passed before the cutoff.
	FindNoShowCandidates(db *gorm.DB, cutoff time.Time) ([]entity.Booking, error)
	// MarkReminderSent stamps reminder_sent_at only if still unset.
	// Returns affected rows so concurrent sweeps stay idempotent.
	MarkReminderSent(db *gorm.DB, id uuid.UUID, at time.Time) (int64, error)
	// TransitionStatus applies the updates only while the booking still
	// holds one of the expected statuses. Zero affected rows means a
	// concurrent transition won and nothing was written.
	TransitionStatus(db *gorm.DB, id uuid.UUID, from []entity.BookingStatus, updates map[string]interface{}) (int64, error)
}
