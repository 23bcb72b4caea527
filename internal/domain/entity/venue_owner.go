package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VenueOwner is the facility operator account the platform settles with.
// CommissionRate is read once at booking creation and snapshotted into the
// booking; later rate changes never touch existing bookings.
type VenueOwner struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BusinessName string    `gorm:"type:varchar(100);not null" json:"business_name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`

	// Fraction of each booking's total retained by the platform, 0–1.
	CommissionRate decimal.Decimal `gorm:"type:decimal(5,4);not null;default:0.1" json:"commission_rate"`

	IsActive   bool `gorm:"not null;default:true" json:"is_active"`
	IsVerified bool `gorm:"not null;default:false" json:"is_verified"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (VenueOwner) TableName() string {
	return "venue_owners"
}
