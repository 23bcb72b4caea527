package repository

import (
	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"
	domainRepo "github.com/Ariel200609/TuTurnoYa/internal/domain/repository"

	"gorm.io/gorm"
)

type notificationRepository struct{}

func NewNotificationRepository() domainRepo.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(db *gorm.DB, notification *entity.Notification) error {
	return db.Create(notification).Error
}
