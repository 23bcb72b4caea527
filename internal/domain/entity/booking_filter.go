package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingFilter narrows booking listings.
type BookingFilter struct {
	Status   *BookingStatus
	CourtID  *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	Limit    int
}

// Offset converts page/limit into a query offset.
func (f BookingFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.PageSize()
}

// PageSize clamps the limit to a sane default.
func (f BookingFilter) PageSize() int {
	if f.Limit < 1 {
		return 10
	}
	if f.Limit > 100 {
		return 100
	}
	return f.Limit
}
