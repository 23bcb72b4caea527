package repository

import (
	"errors"

	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"
	domainRepo "github.com/Ariel200609/TuTurnoYa/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) IncrementTotalBookings(db *gorm.DB, id uuid.UUID) error {
	return db.Model(&entity.User{}).Where("id = ?", id).
		Update("total_bookings", gorm.Expr("total_bookings + 1")).Error
}
