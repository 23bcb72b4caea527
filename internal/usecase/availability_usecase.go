package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/Ariel200609/TuTurnoYa/internal/converter"
	"github.com/Ariel200609/TuTurnoYa/internal/delivery/dto"
	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"
	"github.com/Ariel200609/TuTurnoYa/internal/domain/repository"
	"github.com/Ariel200609/TuTurnoYa/pkg/clock"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrCourtNotFound    = errors.New("court not found")
	ErrCourtUnavailable = errors.New("court is not accepting bookings")
	ErrDateOutOfRange   = errors.New("date is outside the booking window")
	ErrPriceRuleMissing = errors.New("court pricing is not configured for this time")
)

type AvailabilityUsecase interface {
	GetDaySlots(ctx context.Context, courtID uuid.UUID, date time.Time) (*dto.DayAvailabilityResponse, error)
	GetAvailabilityRange(ctx context.Context, courtID uuid.UUID, from time.Time, days int) (*dto.AvailabilityRangeResponse, error)
}

type availabilityUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	clock       clock.Clock
	courtRepo   repository.CourtRepository
	bookingRepo repository.BookingRepository
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clk clock.Clock,
	courtRepo repository.CourtRepository,
	bookingRepo repository.BookingRepository,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:          db,
		log:         log,
		clock:       clk,
		courtRepo:   courtRepo,
		bookingRepo: bookingRepo,
	}
}

// GetDaySlots returns the bookable slots for one court on one date: the
// generated candidates minus past starts and minus windows held by active
// bookings.
func (u *availabilityUsecase) GetDaySlots(ctx context.Context, courtID uuid.UUID, date time.Time) (*dto.DayAvailabilityResponse, error) {
	court, err := u.loadBookableCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	if err := u.checkDateWindow(court, date, now); err != nil {
		return nil, err
	}

	bookings, err := u.bookingRepo.FindByCourtAndDate(u.db.WithContext(ctx), courtID, date, entity.ActiveBookingStatuses)
	if err != nil {
		u.log.Warnf("Failed to load bookings for court %s on %s: %+v", courtID, date.Format("2006-01-02"), err)
		return nil, err
	}

	slots, err := u.openSlots(court, date, now, bookings)
	if err != nil {
		return nil, err
	}

	return &dto.DayAvailabilityResponse{
		Date:   date.Format("2006-01-02"),
		IsOpen: court.IsOpenOn(date),
		Slots:  converter.SlotsToResponses(slots),
	}, nil
}

// GetAvailabilityRange returns per-day slots from the given date forward,
// clamped to the court's advance booking horizon.
func (u *availabilityUsecase) GetAvailabilityRange(ctx context.Context, courtID uuid.UUID, from time.Time, days int) (*dto.AvailabilityRangeResponse, error) {
	court, err := u.loadBookableCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	today := truncateToDay(now)
	if from.Before(today) {
		from = today
	}

	if days < 1 {
		days = 1
	}
	horizon := today.AddDate(0, 0, court.AdvanceBookingDays)
	to := from.AddDate(0, 0, days-1)
	if to.After(horizon) {
		to = horizon
	}
	if from.After(to) {
		return nil, ErrDateOutOfRange
	}

	bookings, err := u.bookingRepo.FindActiveInDateRange(u.db.WithContext(ctx), courtID, from, to)
	if err != nil {
		u.log.Warnf("Failed to load bookings for court %s: %+v", courtID, err)
		return nil, err
	}

	byDate := make(map[string][]entity.Booking)
	for _, b := range bookings {
		key := b.BookingDate.Format("2006-01-02")
		byDate[key] = append(byDate[key], b)
	}

	response := &dto.AvailabilityRangeResponse{CourtID: courtID}
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		slots, err := u.openSlots(court, date, now, byDate[date.Format("2006-01-02")])
		if err != nil {
			return nil, err
		}

		response.Days = append(response.Days, dto.DayAvailabilityResponse{
			Date:   date.Format("2006-01-02"),
			IsOpen: court.IsOpenOn(date),
			Slots:  converter.SlotsToResponses(slots),
		})
	}

	return response, nil
}

func (u *availabilityUsecase) loadBookableCourt(ctx context.Context, courtID uuid.UUID) (*entity.Court, error) {
	court, err := u.courtRepo.FindByID(u.db.WithContext(ctx), courtID)
	if err != nil {
		u.log.Warnf("Failed to find court %s: %+v", courtID, err)
		return nil, err
	}
	if court == nil {
		return nil, ErrCourtNotFound
	}
	if !court.IsBookable() || !court.Venue.IsPubliclyBookable() {
		return nil, ErrCourtUnavailable
	}
	return court, nil
}

func (u *availabilityUsecase) checkDateWindow(court *entity.Court, date time.Time, now time.Time) error {
	today := truncateToDay(now)
	if date.Before(today) {
		return ErrDateOutOfRange
	}
	if date.After(today.AddDate(0, 0, court.AdvanceBookingDays)) {
		return ErrDateOutOfRange
	}
	return nil
}

// openSlots generates the day's candidates and removes past starts and
// windows overlapping any of the given bookings.
func (u *availabilityUsecase) openSlots(court *entity.Court, date time.Time, now time.Time, bookings []entity.Booking) ([]entity.Slot, error) {
	candidates, err := court.AvailableSlots(date)
	if err != nil {
		if errors.Is(err, entity.ErrPriceRuleNotConfigured) {
			return nil, ErrPriceRuleMissing
		}
		return nil, err
	}

	var open []entity.Slot
	for _, slot := range candidates {
		window, err := slot.Window()
		if err != nil {
			continue
		}
		if !window.Start.At(date).After(now) {
			continue
		}

		conflicted := false
		for i := range bookings {
			bookingWindow, err := bookings[i].Window()
			if err != nil {
				continue
			}
			if window.Overlaps(bookingWindow) {
				conflicted = true
				break
			}
		}
		if !conflicted {
			open = append(open, slot)
		}
	}

	return open, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
