package repository

import (
	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VenueRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Venue, error)
	IncrementStats(db *gorm.DB, id uuid.UUID, revenue decimal.Decimal) error
}
