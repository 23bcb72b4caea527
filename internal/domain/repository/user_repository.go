package repository

import (
	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	IncrementTotalBookings(db *gorm.DB, id uuid.UUID) error
}
