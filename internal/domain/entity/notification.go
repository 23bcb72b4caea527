package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType is the event vocabulary consumed by the delivery
// collaborator.
type NotificationType string

const (
	NotificationBookingPending   NotificationType = "booking_pending"
	NotificationBookingConfirmed NotificationType = "booking_confirmed"
	NotificationBookingReminder  NotificationType = "booking_reminder"
	NotificationBookingCancelled NotificationType = "booking_cancelled"
	NotificationReviewRequest    NotificationType = "review_request"
)

// NotificationTarget is who the notice is addressed to.
type NotificationTarget string

const (
	NotificationTargetUser       NotificationTarget = "user"
	NotificationTargetVenueOwner NotificationTarget = "venue_owner"
)

// Notification is a persisted outbound notice. The engine writes these
// fire-and-forget; actual delivery (push/SMS/email) is the collaborator's
// job and its failures never affect booking state.
type Notification struct {
	ID       uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title    string             `gorm:"type:varchar(200);not null" json:"title"`
	Message  string             `gorm:"type:text;not null" json:"message"`
	Type     NotificationType   `gorm:"type:varchar(30);not null;index" json:"type"`
	Priority string             `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Channels StringList         `gorm:"type:jsonb" json:"channels"`
	Target   NotificationTarget `gorm:"type:varchar(15);not null" json:"target"`

	UserID       *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	VenueOwnerID *uuid.UUID `gorm:"type:uuid;index" json:"venue_owner_id,omitempty"`
	BookingID    *uuid.UUID `gorm:"type:uuid;index" json:"booking_id,omitempty"`

	Data JSON `gorm:"type:jsonb" json:"data,omitempty"`

	// ScheduledFor defers delivery (reminders); nil means immediate.
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`

	Status    string    `gorm:"type:varchar(15);not null;default:'pending'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
