package entity

import "time"

// BookingCounter is the per-day sequence behind booking numbers. One row
// per calendar day; the allocator locks the row FOR UPDATE inside the
// create-booking transaction so numbers are strictly increasing with no
// duplicates under concurrency.
type BookingCounter struct {
	Day       string    `gorm:"type:varchar(8);primaryKey" json:"day"` // YYYYMMDD
	LastSeq   int       `gorm:"not null;default:0" json:"last_seq"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BookingCounter) TableName() string {
	return "booking_counters"
}
