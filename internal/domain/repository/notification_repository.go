package repository

import (
	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *entity.Notification) error
}
