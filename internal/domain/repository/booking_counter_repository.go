package repository

import (
	"time"

	"gorm.io/gorm"
)

type BookingCounterRepository interface {
	// NextSequence reserves the next per-day sequence number. Must run
	// inside the caller's transaction: the counter row is locked FOR
	// UPDATE, serializing allocation so numbers are strictly increasing
	// with no duplicates under concurrent creates.
	NextSequence(tx *gorm.DB, date time.Time) (int, error)
}
