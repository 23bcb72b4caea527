package service

import (
	"context"
	"fmt"

	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"
	"github.com/Ariel200609/TuTurnoYa/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NotificationService records outbound notices for the delivery
// collaborator. Every method is fire-and-forget: failures are logged and
// swallowed so booking state transitions never roll back over a notice.
type NotificationService interface {
	BookingPending(ctx context.Context, booking *entity.Booking, venue *entity.Venue)
	BookingConfirmed(ctx context.Context, booking *entity.Booking)
	BookingRejected(ctx context.Context, booking *entity.Booking, reason string)
	BookingCancelled(ctx context.Context, booking *entity.Booking, venue *entity.Venue)
	BookingReminder(ctx context.Context, booking *entity.Booking)
	ReviewRequest(ctx context.Context, booking *entity.Booking)
}

type notificationService struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(db *gorm.DB, log *logrus.Logger, notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
	}
}

func (s *notificationService) create(ctx context.Context, n *entity.Notification) {
	if err := s.notificationRepo.Create(s.db.WithContext(ctx), n); err != nil {
		s.log.Warnf("Failed to record %s notification for booking %v: %+v", n.Type, n.BookingID, err)
	}
}

// BookingPending notifies the venue owner that a new booking awaits
// confirmation.
func (s *notificationService) BookingPending(ctx context.Context, booking *entity.Booking, venue *entity.Venue) {
	ownerID := venue.OwnerID
	s.create(ctx, &entity.Notification{
		Title:        "Nueva reserva pendiente",
		Message:      fmt.Sprintf("%s reservó %s el %s a las %s", booking.ContactName, booking.Court.Name, booking.BookingDate.Format("2006-01-02"), booking.StartTime),
		Type:         entity.NotificationBookingPending,
		Priority:     "high",
		Channels:     entity.StringList{"push", "email"},
		Target:       entity.NotificationTargetVenueOwner,
		VenueOwnerID: &ownerID,
		BookingID:    &booking.ID,
		Data: entity.JSON{
			"booking_number": booking.BookingNumber,
			"court_id":       booking.CourtID.String(),
			"total_price":    booking.TotalPrice.String(),
		},
	})
}

// BookingConfirmed notifies the user their booking is locked in.
func (s *notificationService) BookingConfirmed(ctx context.Context, booking *entity.Booking) {
	userID := booking.UserID
	s.create(ctx, &entity.Notification{
		Title:     "Reserva confirmada",
		Message:   fmt.Sprintf("Tu reserva %s del %s a las %s está confirmada", booking.BookingNumber, booking.BookingDate.Format("2006-01-02"), booking.StartTime),
		Type:      entity.NotificationBookingConfirmed,
		Priority:  "high",
		Channels:  entity.StringList{"push", "sms"},
		Target:    entity.NotificationTargetUser,
		UserID:    &userID,
		BookingID: &booking.ID,
		Data: entity.JSON{
			"booking_number": booking.BookingNumber,
		},
	})
}

// BookingRejected notifies the user the venue declined the booking.
func (s *notificationService) BookingRejected(ctx context.Context, booking *entity.Booking, reason string) {
	userID := booking.UserID
	s.create(ctx, &entity.Notification{
		Title:     "Reserva rechazada",
		Message:   fmt.Sprintf("Tu reserva %s fue rechazada: %s", booking.BookingNumber, reason),
		Type:      entity.NotificationBookingCancelled,
		Priority:  "high",
		Channels:  entity.StringList{"push", "email"},
		Target:    entity.NotificationTargetUser,
		UserID:    &userID,
		BookingID: &booking.ID,
		Data: entity.JSON{
			"booking_number": booking.BookingNumber,
			"reason":         reason,
		},
	})
}

// BookingCancelled notifies the counterparty of the cancelling actor.
func (s *notificationService) BookingCancelled(ctx context.Context, booking *entity.Booking, venue *entity.Venue) {
	refund := "0"
	if booking.RefundAmount != nil {
		refund = booking.RefundAmount.String()
	}
	data := entity.JSON{
		"booking_number": booking.BookingNumber,
		"cancelled_by":   string(booking.CancelledBy),
		"refund_amount":  refund,
	}

	// A user cancellation informs the venue; any other actor informs the
	// user. Both sides hear about admin cancellations via the user notice
	// plus the owner day sheet.
	if booking.CancelledBy == entity.CancelActorUser {
		ownerID := venue.OwnerID
		s.create(ctx, &entity.Notification{
			Title:        "Reserva cancelada",
			Message:      fmt.Sprintf("La reserva %s del %s a las %s fue cancelada por el cliente", booking.BookingNumber, booking.BookingDate.Format("2006-01-02"), booking.StartTime),
			Type:         entity.NotificationBookingCancelled,
			Priority:     "medium",
			Channels:     entity.StringList{"push"},
			Target:       entity.NotificationTargetVenueOwner,
			VenueOwnerID: &ownerID,
			BookingID:    &booking.ID,
			Data:         data,
		})
		return
	}

	userID := booking.UserID
	s.create(ctx, &entity.Notification{
		Title:     "Reserva cancelada",
		Message:   fmt.Sprintf("Tu reserva %s fue cancelada. Reembolso: $%s", booking.BookingNumber, refund),
		Type:      entity.NotificationBookingCancelled,
		Priority:  "high",
		Channels:  entity.StringList{"push", "email"},
		Target:    entity.NotificationTargetUser,
		UserID:    &userID,
		BookingID: &booking.ID,
		Data:      data,
	})
}

// BookingReminder is the 24h pre-game notice.
func (s *notificationService) BookingReminder(ctx context.Context, booking *entity.Booking) {
	userID := booking.UserID
	dueAt := booking.ReminderDueAt()
	s.create(ctx, &entity.Notification{
		Title:        "Recordatorio de reserva",
		Message:      fmt.Sprintf("Mañana juegas: reserva %s a las %s", booking.BookingNumber, booking.StartTime),
		Type:         entity.NotificationBookingReminder,
		Priority:     "medium",
		Channels:     entity.StringList{"push"},
		Target:       entity.NotificationTargetUser,
		UserID:       &userID,
		BookingID:    &booking.ID,
		ScheduledFor: &dueAt,
		Data: entity.JSON{
			"booking_number": booking.BookingNumber,
		},
	})
}

// ReviewRequest asks the user to rate the court after completion.
func (s *notificationService) ReviewRequest(ctx context.Context, booking *entity.Booking) {
	userID := booking.UserID
	s.create(ctx, &entity.Notification{
		Title:     "¿Cómo estuvo tu partido?",
		Message:   fmt.Sprintf("Contanos cómo estuvo la cancha de tu reserva %s", booking.BookingNumber),
		Type:      entity.NotificationReviewRequest,
		Priority:  "low",
		Channels:  entity.StringList{"push"},
		Target:    entity.NotificationTargetUser,
		UserID:    &userID,
		BookingID: &booking.ID,
		Data: entity.JSON{
			"booking_number": booking.BookingNumber,
			"court_id":       booking.CourtID.String(),
		},
	})
}
