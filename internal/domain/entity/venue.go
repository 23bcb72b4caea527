package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venue is a sports facility publishing bookable courts. Only the fields
// the scheduling engine touches are modeled; profile media and geo data
// live with the directory collaborator.
type Venue struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Address     string    `gorm:"type:varchar(255)" json:"address,omitempty"`
	PhoneNumber string    `gorm:"type:varchar(30)" json:"phone_number,omitempty"`

	// AutoConfirm makes new bookings start in confirmed instead of pending.
	AutoConfirm bool `gorm:"not null;default:false" json:"auto_confirm"`

	IsActive   bool `gorm:"not null;default:true;index:idx_venue_eligible" json:"is_active"`
	IsVerified bool `gorm:"not null;default:false;index:idx_venue_eligible" json:"is_verified"`

	// Statistics counters, incremented atomically on booking completion.
	TotalBookings int             `gorm:"not null;default:0" json:"total_bookings"`
	TotalRevenue  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_revenue"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Owner VenueOwner `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Venue) TableName() string {
	return "venues"
}

// IsPubliclyBookable reports whether end users may book this venue's courts.
func (v *Venue) IsPubliclyBookable() bool {
	return v.IsActive && v.IsVerified
}
