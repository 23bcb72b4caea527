package usecase

import (
	"context"
	"errors"

	"github.com/Ariel200609/TuTurnoYa/internal/converter"
	"github.com/Ariel200609/TuTurnoYa/internal/delivery/dto"
	"github.com/Ariel200609/TuTurnoYa/internal/delivery/http/middleware"
	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"
	"github.com/Ariel200609/TuTurnoYa/internal/domain/repository"
	"github.com/Ariel200609/TuTurnoYa/internal/service"
	"github.com/Ariel200609/TuTurnoYa/pkg/clock"
	"github.com/Ariel200609/TuTurnoYa/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidTransition   = errors.New("booking cannot move to that status")
	ErrCancellationWindow  = errors.New("bookings can only be cancelled 24 hours in advance")
	ErrNotCheckInDay       = errors.New("check-in is only possible on the booking date")
	ErrBookingNotFinished  = errors.New("booking has not finished yet")
	ErrBookingNotStarted   = errors.New("booking has not started yet")
	ErrBookingNotManagedBy = errors.New("booking does not belong to your venue")
)

type BookingLifecycleUsecase interface {
	ConfirmBooking(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error)
	RejectBooking(ctx context.Context, bookingID uuid.UUID, req *dto.RejectBookingRequest) (*dto.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, req *dto.CancelBookingRequest) (*dto.CancelBookingResponse, error)
	CheckInBooking(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error)
	CompleteBooking(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error)
	MarkNoShow(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error)
}

type bookingLifecycleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	clock        clock.Clock
	bookingRepo  repository.BookingRepository
	courtRepo    repository.CourtRepository
	venueRepo    repository.VenueRepository
	userRepo     repository.UserRepository
	notification service.NotificationService
}

func NewBookingLifecycleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clk clock.Clock,
	bookingRepo repository.BookingRepository,
	courtRepo repository.CourtRepository,
	venueRepo repository.VenueRepository,
	userRepo repository.UserRepository,
	notification service.NotificationService,
) BookingLifecycleUsecase {
	return &bookingLifecycleUsecase{
		db:           db,
		log:          log,
		clock:        clk,
		bookingRepo:  bookingRepo,
		courtRepo:    courtRepo,
		venueRepo:    venueRepo,
		userRepo:     userRepo,
		notification: notification,
	}
}

// transition writes the updates guarded on the status the caller just
// validated. Zero affected rows means another operator moved the booking
// in between, so the write is abandoned.
func (u *bookingLifecycleUsecase) transition(ctx context.Context, booking *entity.Booking, updates map[string]interface{}) error {
	rows, err := u.bookingRepo.TransitionStatus(u.db.WithContext(ctx), booking.ID,
		[]entity.BookingStatus{booking.Status}, updates)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// ConfirmBooking moves a pending booking to confirmed. Venue owner or admin
// only.
func (u *bookingLifecycleUsecase) ConfirmBooking(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, _, err := u.findManagedBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.CanTransitionTo(entity.BookingStatusConfirmed) {
		return nil, ErrInvalidTransition
	}

	now := u.clock.Now()
	err = u.transition(ctx, booking, map[string]interface{}{
		"status":       entity.BookingStatusConfirmed,
		"confirmed_at": now,
	})
	if err != nil {
		if !errors.Is(err, ErrInvalidTransition) {
			u.log.Warnf("Failed to confirm booking %s: %+v", bookingID, err)
		}
		return nil, err
	}
	booking.Status = entity.BookingStatusConfirmed
	booking.ConfirmedAt = &now

	u.notification.BookingConfirmed(ctx, booking)
	u.log.Infof("Booking confirmed: number=%s", booking.BookingNumber)
	return converter.BookingToResponse(booking), nil
}

// RejectBooking declines a pending booking. Venue owner or admin only.
func (u *bookingLifecycleUsecase) RejectBooking(ctx context.Context, bookingID uuid.UUID, req *dto.RejectBookingRequest) (*dto.BookingResponse, error) {
	booking, _, err := u.findManagedBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.CanTransitionTo(entity.BookingStatusRejected) {
		return nil, ErrInvalidTransition
	}

	err = u.transition(ctx, booking, map[string]interface{}{
		"status":              entity.BookingStatusRejected,
		"cancellation_reason": req.Reason,
	})
	if err != nil {
		if !errors.Is(err, ErrInvalidTransition) {
			u.log.Warnf("Failed to reject booking %s: %+v", bookingID, err)
		}
		return nil, err
	}
	booking.Status = entity.BookingStatusRejected
	booking.CancellationReason = req.Reason

	u.notification.BookingRejected(ctx, booking, req.Reason)
	u.log.Infof("Booking rejected: number=%s", booking.BookingNumber)
	return converter.BookingToResponse(booking), nil
}

// CancelBooking cancels an active booking.
//
// Users and venue owners are held to the 24h advance window; admins may
// cancel any active booking, with the refund tiers deciding how much goes
// back (full at 24h+, half at 12h+, nothing under that).
func (u *bookingLifecycleUsecase) CancelBooking(ctx context.Context, bookingID uuid.UUID, req *dto.CancelBookingRequest) (*dto.CancelBookingResponse, error) {
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

	var cancelledBy entity.CancelActor
	switch actorType {
	case jwt.ActorAdmin:
		cancelledBy = entity.CancelActorAdmin
	case jwt.ActorVenueOwner:
		if booking.Court.Venue.OwnerID != actorID {
			return nil, ErrBookingNotManagedBy
		}
		cancelledBy = entity.CancelActorVenue
	default:
		if booking.UserID != actorID {
			return nil, ErrBookingNotOwned
		}
		cancelledBy = entity.CancelActorUser
	}

	now := u.clock.Now()
	if !booking.CanTransitionTo(entity.BookingStatusCancelled) {
		return nil, ErrInvalidTransition
	}
	if cancelledBy != entity.CancelActorAdmin && !booking.CanBeCancelled(now) {
		return nil, ErrCancellationWindow
	}

	refund := booking.CalculateRefund(now)

	updates := map[string]interface{}{
		"status":              entity.BookingStatusCancelled,
		"cancelled_at":        now,
		"cancelled_by":        cancelledBy,
		"cancellation_reason": req.Reason,
		"refund_amount":       refund,
	}
	if booking.PaymentStatus == entity.PaymentStatusPaid {
		switch {
		case refund.Equal(booking.TotalPrice):
			updates["payment_status"] = entity.PaymentStatusRefunded
		case refund.IsPositive():
			updates["payment_status"] = entity.PaymentStatusPartialRefund
		}
	}

	if err := u.transition(ctx, booking, updates); err != nil {
		if !errors.Is(err, ErrInvalidTransition) {
			u.log.Warnf("Failed to cancel booking %s: %+v", bookingID, err)
		}
		return nil, err
	}

	booking.Status = entity.BookingStatusCancelled
	booking.CancelledAt = &now
	booking.CancelledBy = cancelledBy
	booking.CancellationReason = req.Reason
	booking.RefundAmount = &refund
	if ps, ok := updates["payment_status"]; ok {
		booking.PaymentStatus = ps.(entity.PaymentStatus)
	}

	u.notification.BookingCancelled(ctx, booking, &booking.Court.Venue)
	u.log.Infof("Booking cancelled: number=%s, by=%s, refund=%s", booking.BookingNumber, cancelledBy, refund)
	return &dto.CancelBookingResponse{
		Booking:      converter.BookingToResponse(booking),
		RefundAmount: refund,
	}, nil
}

// CheckInBooking stamps arrival at the venue. Idempotent: a second check-in
// returns the booking unchanged.
func (u *bookingLifecycleUsecase) CheckInBooking(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, _, err := u.findManagedBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.CheckInAt != nil {
		return converter.BookingToResponse(booking), nil
	}

	if booking.Status != entity.BookingStatusConfirmed && booking.Status != entity.BookingStatusPaid {
		return nil, ErrInvalidTransition
	}

	now := u.clock.Now()
	if booking.BookingDate.Format("2006-01-02") != now.Format("2006-01-02") {
		return nil, ErrNotCheckInDay
	}

	err = u.transition(ctx, booking, map[string]interface{}{"check_in_at": now})
	if err != nil {
		if !errors.Is(err, ErrInvalidTransition) {
			u.log.Warnf("Failed to check in booking %s: %+v", bookingID, err)
		}
		return nil, err
	}
	booking.CheckInAt = &now

	u.log.Infof("Booking checked in: number=%s", booking.BookingNumber)
	return converter.BookingToResponse(booking), nil
}

// CompleteBooking closes out a finished booking and settles the statistics
// counters for the court, venue and user in one transaction.
func (u *bookingLifecycleUsecase) CompleteBooking(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, venue, err := u.findManagedBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.CanTransitionTo(entity.BookingStatusCompleted) {
		return nil, ErrInvalidTransition
	}

	now := u.clock.Now()
	if !booking.IsPast(now) {
		return nil, ErrBookingNotFinished
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := u.bookingRepo.TransitionStatus(tx, booking.ID,
			[]entity.BookingStatus{booking.Status},
			map[string]interface{}{"status": entity.BookingStatusCompleted})
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrInvalidTransition
		}
		if err := u.courtRepo.IncrementStats(tx, booking.CourtID, booking.TotalPrice); err != nil {
			return err
		}
		if err := u.venueRepo.IncrementStats(tx, venue.ID, booking.VenueAmount); err != nil {
			return err
		}
		return u.userRepo.IncrementTotalBookings(tx, booking.UserID)
	})
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			return nil, ErrInvalidTransition
		}
		u.log.Errorf("Failed to complete booking %s: %+v", bookingID, err)
		return nil, err
	}
	booking.Status = entity.BookingStatusCompleted

	u.notification.ReviewRequest(ctx, booking)
	u.log.Infof("Booking completed: number=%s, revenue=%s", booking.BookingNumber, booking.TotalPrice)
	return converter.BookingToResponse(booking), nil
}

// MarkNoShow records that the party never arrived. Manual counterpart of
// the background sweep, for operators who notice before the grace period
// runs out.
func (u *bookingLifecycleUsecase) MarkNoShow(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, _, err := u.findManagedBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.CheckInAt != nil {
		return nil, ErrInvalidTransition
	}
	if !booking.CanTransitionTo(entity.BookingStatusNoShow) {
		return nil, ErrInvalidTransition
	}

	now := u.clock.Now()
	if booking.IsUpcoming(now) {
		return nil, ErrBookingNotStarted
	}

	err = u.transition(ctx, booking, map[string]interface{}{"status": entity.BookingStatusNoShow})
	if err != nil {
		if !errors.Is(err, ErrInvalidTransition) {
			u.log.Warnf("Failed to mark booking %s as no-show: %+v", bookingID, err)
		}
		return nil, err
	}
	booking.Status = entity.BookingStatusNoShow

	u.log.Infof("Booking marked no-show: number=%s", booking.BookingNumber)
	return converter.BookingToResponse(booking), nil
}

// findManagedBooking loads a booking and verifies the caller manages it:
// the owning venue's operator or an admin.
func (u *bookingLifecycleUsecase) findManagedBooking(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, *entity.Venue, error) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		return nil, nil, errors.New("actor not found in context")
	}
	actorType, _ := middleware.GetActorTypeFromContext(ctx)

	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, nil, err
	}
	if booking == nil {
		return nil, nil, ErrBookingNotFound
	}

	venue := booking.Court.Venue
	if actorType != jwt.ActorAdmin && venue.OwnerID != actorID {
		return nil, nil, ErrBookingNotManagedBy
	}

	return booking, &venue, nil
}
