package repository

import (
	"errors"

	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"
	domainRepo "github.com/Ariel200609/TuTurnoYa/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type venueRepository struct{}

func NewVenueRepository() domainRepo.VenueRepository {
	return &venueRepository{}
}

func (r *venueRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Venue, error) {
	var venue entity.Venue
	err := db.Preload("Owner").Where("id = ?", id).First(&venue).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepository) IncrementStats(db *gorm.DB, id uuid.UUID, revenue decimal.Decimal) error {
	return db.Model(&entity.Venue{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_bookings": gorm.Expr("total_bookings + 1"),
			"total_revenue":  gorm.Expr("total_revenue + ?", revenue),
		}).Error
}
