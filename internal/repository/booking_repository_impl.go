package repository

import (
	"errors"
	"time"

	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"
	domainRepo "github.com/Ariel200609/TuTurnoYa/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(db *gorm.DB, booking *entity.Booking) error {
	return db.Create(booking).Error
}

func (r *bookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Preload("Court.Venue").Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByUserID(db *gorm.DB, userID uuid.UUID, filter entity.BookingFilter) ([]entity.Booking, int64, error) {
	query := db.Model(&entity.Booking{}).Where("user_id = ?", userID)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CourtID != nil {
		query = query.Where("court_id = ?", *filter.CourtID)
	}
	if filter.DateFrom != nil {
		query = query.Where("booking_date >= ?", filter.DateFrom.Format("2006-01-02"))
	}
	if filter.DateTo != nil {
		query = query.Where("booking_date <= ?", filter.DateTo.Format("2006-01-02"))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []entity.Booking
	err := query.Preload("Court.Venue").
		Order("booking_date DESC, start_time DESC").
		Limit(filter.PageSize()).
		Offset(filter.Offset()).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *bookingRepository) FindByCourtAndDate(db *gorm.DB, courtID uuid.UUID, date time.Time, statuses []entity.BookingStatus) ([]entity.Booking, error) {
	query := db.Where("court_id = ? AND booking_date = ?", courtID, date.Format("2006-01-02"))
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var bookings []entity.Booking
	err := query.Preload("User").Order("start_time ASC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindActiveInDateRange(db *gorm.DB, courtID uuid.UUID, from, to time.Time) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Where("court_id = ? AND booking_date BETWEEN ? AND ? AND status IN ?",
		courtID, from.Format("2006-01-02"), to.Format("2006-01-02"), entity.ActiveBookingStatuses).
		Order("booking_date ASC, start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// Half-open intervals: [start, end) conflicts with [s, e) iff start < e and
// end > s, so back-to-back bookings never collide.
func (r *bookingRepository) FindConflicting(db *gorm.DB, courtID uuid.UUID, date time.Time, startTime, endTime string, excludeID *uuid.UUID) ([]entity.Booking, error) {
	query := db.Where(
		"court_id = ? AND booking_date = ? AND status IN ? AND start_time < ? AND end_time > ?",
		courtID, date.Format("2006-01-02"), entity.ActiveBookingStatuses, endTime, startTime,
	)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	var bookings []entity.Booking
	err := query.Order("start_time ASC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindReminderDue(db *gorm.DB, now time.Time) ([]entity.Booking, error) {
	// The 24h window spans at most two calendar dates; the exact
	// ShouldSendReminder predicate re-checks each candidate in memory.
	today := now.Format("2006-01-02")
	tomorrow := now.Add(24 * time.Hour).Format("2006-01-02")

	var bookings []entity.Booking
	err := db.Where(
		"status IN ? AND reminder_sent_at IS NULL AND booking_date IN ?",
		[]entity.BookingStatus{entity.BookingStatusConfirmed, entity.BookingStatusPaid},
		[]string{today, tomorrow},
	).Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindNoShowCandidates(db *gorm.DB, cutoff time.Time) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Where(
		"status = ? AND check_in_at IS NULL AND booking_date <= ?",
		entity.BookingStatusConfirmed, cutoff.Format("2006-01-02"),
	).Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	// booking_date alone is too coarse; keep only bookings whose end time
	// actually passed the cutoff.
	overdue := bookings[:0]
	for _, b := range bookings {
		if b.EndDateTime().Before(cutoff) {
			overdue = append(overdue, b)
		}
	}
	return overdue, nil
}

func (r *bookingRepository) MarkReminderSent(db *gorm.DB, id uuid.UUID, at time.Time) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ? AND reminder_sent_at IS NULL", id).
		Update("reminder_sent_at", at)
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) TransitionStatus(db *gorm.DB, id uuid.UUID, from []entity.BookingStatus, updates map[string]interface{}) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}
