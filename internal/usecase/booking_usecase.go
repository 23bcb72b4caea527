package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ariel200609/TuTurnoYa/internal/converter"
	"github.com/Ariel200609/TuTurnoYa/internal/delivery/dto"
	"github.com/Ariel200609/TuTurnoYa/internal/delivery/http/middleware"
	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"
	"github.com/Ariel200609/TuTurnoYa/internal/domain/repository"
	"github.com/Ariel200609/TuTurnoYa/internal/service"
	"github.com/Ariel200609/TuTurnoYa/pkg/clock"
	"github.com/Ariel200609/TuTurnoYa/pkg/jwt"
	"github.com/Ariel200609/TuTurnoYa/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingNotOwned  = errors.New("booking does not belong to you")
	ErrBookingConflict  = errors.New("the slot is already booked")
	ErrPastBooking      = errors.New("cannot book a slot in the past")
	ErrInvalidDuration  = errors.New("duration is outside the court's limits")
	ErrSlotUnavailable  = errors.New("the slot is outside opening hours or blocked")
	ErrInvalidTimeValue = errors.New("invalid time value")
	ErrInvalidFilter    = errors.New("invalid listing filter")
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error)
	GetMyBookings(ctx context.Context, req *dto.ListBookingsRequest) (*dto.BookingListResponse, error)
}

type bookingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	clock        clock.Clock
	bookingRepo  repository.BookingRepository
	courtRepo    repository.CourtRepository
	userRepo     repository.UserRepository
	counterRepo  repository.BookingCounterRepository
	notification service.NotificationService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clk clock.Clock,
	bookingRepo repository.BookingRepository,
	courtRepo repository.CourtRepository,
	userRepo repository.UserRepository,
	counterRepo repository.BookingCounterRepository,
	notification service.NotificationService,
) BookingUsecase {
	return &bookingUsecase{
		db:           db,
		log:          log,
		clock:        clk,
		bookingRepo:  bookingRepo,
		courtRepo:    courtRepo,
		userRepo:     userRepo,
		counterRepo:  counterRepo,
		notification: notification,
	}
}

// CreateBooking reserves a slot.
//
// Flow:
// 1. Validate the court is publicly bookable and the user exists
// 2. Validate date window, duration limits and opening hours
// 3. Price the window and snapshot the owner's commission rate
// 4. In one transaction: lock the day counter and allocate the booking
//    number, re-check conflicts, insert the row
// 5. Post-commit: fire the pending/confirmed notification
func (u *bookingUsecase) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	userID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		return nil, errors.New("actor not found in context")
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", userID, err)
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, errors.New("user account is not active")
	}

	court, err := u.courtRepo.FindBookableByID(u.db.WithContext(ctx), req.CourtID)
	if err != nil {
		u.log.Warnf("Failed to find court %s: %+v", req.CourtID, err)
		return nil, err
	}
	if court == nil {
		return nil, ErrCourtNotFound
	}
	if !court.IsBookable() {
		return nil, ErrCourtUnavailable
	}

	date, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		return nil, ErrInvalidTimeValue
	}
	start, err := timeslot.Parse(req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeValue
	}

	now := u.clock.Now()
	if !start.At(date).After(now) {
		return nil, ErrPastBooking
	}
	today := truncateToDay(now)
	if date.After(today.AddDate(0, 0, court.AdvanceBookingDays)) {
		return nil, ErrDateOutOfRange
	}

	if req.Duration < court.MinBookingDuration || req.Duration > court.MaxBookingDuration {
		return nil, ErrInvalidDuration
	}

	window := timeslot.NewRange(start, start.Add(req.Duration))
	if !window.IsValid() {
		return nil, ErrInvalidTimeValue
	}
	if !court.IsAvailableAt(date, window) {
		return nil, ErrSlotUnavailable
	}

	multiplier, err := court.MultiplierFor(date, start)
	if err != nil {
		if errors.Is(err, entity.ErrPriceRuleNotConfigured) {
			return nil, ErrPriceRuleMissing
		}
		return nil, err
	}
	totalPrice, err := court.CalculatePrice(date, start, req.Duration)
	if err != nil {
		return nil, err
	}

	playerCount := req.PlayerCount
	if playerCount == 0 {
		playerCount = 1
	}

	booking := &entity.Booking{
		UserID:      userID,
		CourtID:     court.ID,
		BookingDate: date,
		StartTime:   window.Start.String(),
		EndTime:     window.End.String(),
		Duration:    req.Duration,

		BasePrice:       court.BasePrice,
		PriceMultiplier: multiplier,
		TotalPrice:      totalPrice,
		CommissionRate:  court.Venue.Owner.CommissionRate,

		PlayerCount:        playerCount,
		Players:            converter.PlayersFromRequests(req.Players),
		ContactName:        req.ContactName,
		ContactPhone:       req.ContactPhone,
		ContactEmail:       req.ContactEmail,
		SpecialRequests:    req.SpecialRequests,
		EquipmentRequested: req.EquipmentRequested,

		Status:        entity.BookingStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
	}
	booking.RecalculateAmounts()

	if court.Venue.AutoConfirm {
		booking.Status = entity.BookingStatusConfirmed
		confirmedAt := now
		booking.ConfirmedAt = &confirmedAt
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return u.reserveSlot(tx, booking)
	})
	if err != nil {
		if errors.Is(err, ErrBookingConflict) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBookingConflict
		}
		u.log.Errorf("Failed to create booking for court %s: %+v", court.ID, err)
		return nil, err
	}

	booking.Court = *court
	if booking.Status == entity.BookingStatusConfirmed {
		u.notification.BookingConfirmed(ctx, booking)
	} else {
		u.notification.BookingPending(ctx, booking, &court.Venue)
	}

	u.log.Infof("Booking created: number=%s, court=%s, date=%s %s-%s, status=%s",
		booking.BookingNumber, court.ID, req.BookingDate, booking.StartTime, booking.EndTime, booking.Status)
	return converter.BookingToResponse(booking), nil
}

// reserveSlot allocates the booking number and inserts the row inside the
// caller's transaction. The day-counter row lock is taken first: it
// serializes concurrent creators for the day, so the conflict query that
// follows always sees bookings committed by an earlier holder of the lock.
// The partial unique index on active slots remains the storage backstop.
func (u *bookingUsecase) reserveSlot(tx *gorm.DB, booking *entity.Booking) error {
	seq, err := u.counterRepo.NextSequence(tx, booking.BookingDate)
	if err != nil {
		return err
	}
	booking.BookingNumber = fmt.Sprintf("TY-%s-%04d", booking.BookingDate.Format("20060102"), seq)

	conflicts, err := u.bookingRepo.FindConflicting(tx, booking.CourtID, booking.BookingDate, booking.StartTime, booking.EndTime, nil)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return ErrBookingConflict
	}

	return u.bookingRepo.Create(tx, booking)
}

// GetBooking returns one booking, visible to its user, the venue owner it
// belongs to, or an admin.
func (u *bookingUsecase) GetBooking(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.findVisibleBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return converter.BookingToResponse(booking), nil
}

// GetMyBookings lists the logged-in user's bookings with filters and
// pagination.
func (u *bookingUsecase) GetMyBookings(ctx context.Context, req *dto.ListBookingsRequest) (*dto.BookingListResponse, error) {
	userID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		return nil, errors.New("actor not found in context")
	}

	filter, err := listRequestToFilter(req)
	if err != nil {
		return nil, err
	}

	bookings, total, err := u.bookingRepo.FindByUserID(u.db.WithContext(ctx), userID, filter)
	if err != nil {
		u.log.Warnf("Failed to list bookings for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    total,
		Page:     maxInt(filter.Page, 1),
		Limit:    filter.PageSize(),
	}, nil
}

func (u *bookingUsecase) findVisibleBooking(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, error) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		return nil, errors.New("actor not found in context")
	}
	actorType, _ := middleware.GetActorTypeFromContext(ctx)

	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	switch actorType {
	case jwt.ActorAdmin:
	case jwt.ActorVenueOwner:
		if booking.Court.Venue.OwnerID != actorID {
			return nil, ErrBookingNotOwned
		}
	default:
		if booking.UserID != actorID {
			return nil, ErrBookingNotOwned
		}
	}

	return booking, nil
}

func listRequestToFilter(req *dto.ListBookingsRequest) (entity.BookingFilter, error) {
	filter := entity.BookingFilter{Page: req.Page, Limit: req.Limit}

	if req.Status != "" {
		status := entity.BookingStatus(req.Status)
		filter.Status = &status
	}
	if req.CourtID != "" {
		courtID, err := uuid.Parse(req.CourtID)
		if err != nil {
			return filter, ErrInvalidFilter
		}
		filter.CourtID = &courtID
	}
	if req.DateFrom != "" {
		from, err := time.Parse("2006-01-02", req.DateFrom)
		if err != nil {
			return filter, ErrInvalidFilter
		}
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			return filter, ErrInvalidFilter
		}
		filter.DateTo = &to
	}

	return filter, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
