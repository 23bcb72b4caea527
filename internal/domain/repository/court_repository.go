package repository

import (
	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CourtRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Court, error)
	// FindBookableByID loads a court with its venue and owner, restricted
	// to courts the public may book (active, available, not in
	// maintenance, on an active verified venue).
	FindBookableByID(db *gorm.DB, id uuid.UUID) (*entity.Court, error)
	FindByVenueID(db *gorm.DB, venueID uuid.UUID) ([]entity.Court, error)
	Save(db *gorm.DB, court *entity.Court) error
	// IncrementStats bumps the statistics counters atomically (SQL-side
	// increment, not read-modify-write).
	IncrementStats(db *gorm.DB, id uuid.UUID, revenue decimal.Decimal) error
}
