package repository

import (
	"errors"

	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"
	domainRepo "github.com/Ariel200609/TuTurnoYa/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type courtRepository struct{}

func NewCourtRepository() domainRepo.CourtRepository {
	return &courtRepository{}
}

func (r *courtRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Court, error) {
	var court entity.Court
	err := db.Preload("Venue").Where("id = ?", id).First(&court).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &court, nil
}

func (r *courtRepository) FindBookableByID(db *gorm.DB, id uuid.UUID) (*entity.Court, error) {
	var court entity.Court
	err := db.Preload("Venue.Owner").
		Joins("JOIN venues ON venues.id = courts.venue_id").
		Where("courts.id = ? AND courts.is_active AND courts.is_available AND NOT courts.maintenance_mode", id).
		Where("venues.is_active AND venues.is_verified").
		First(&court).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &court, nil
}

func (r *courtRepository) FindByVenueID(db *gorm.DB, venueID uuid.UUID) ([]entity.Court, error) {
	var courts []entity.Court
	err := db.Where("venue_id = ?", venueID).Order("name ASC").Find(&courts).Error
	if err != nil {
		return nil, err
	}
	return courts, nil
}

func (r *courtRepository) Save(db *gorm.DB, court *entity.Court) error {
	return db.Save(court).Error
}

func (r *courtRepository) IncrementStats(db *gorm.DB, id uuid.UUID, revenue decimal.Decimal) error {
	return db.Model(&entity.Court{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_bookings": gorm.Expr("total_bookings + 1"),
			"total_revenue":  gorm.Expr("total_revenue + ?", revenue),
		}).Error
}
