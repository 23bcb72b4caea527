package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the end user placing bookings. Authentication and profile
// management live outside this service; the engine only reads identity and
// bumps the booking counter on completion.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FirstName   string    `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName    string    `gorm:"type:varchar(50);not null" json:"last_name"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PhoneNumber string    `gorm:"type:varchar(30)" json:"phone_number,omitempty"`

	IsActive      bool `gorm:"not null;default:true" json:"is_active"`
	TotalBookings int  `gorm:"not null;default:0" json:"total_bookings"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins the user's names for notification payloads.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
