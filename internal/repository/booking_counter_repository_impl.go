package repository

import (
	"errors"
	"time"

	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"
	domainRepo "github.com/Ariel200609/TuTurnoYa/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bookingCounterRepository struct{}

func NewBookingCounterRepository() domainRepo.BookingCounterRepository {
	return &bookingCounterRepository{}
}

// NextSequence must run inside the booking creation transaction. The row
// lock serializes concurrent creators on the same day so sequence numbers
// never repeat.
func (r *bookingCounterRepository) NextSequence(tx *gorm.DB, date time.Time) (int, error) {
	day := date.Format("20060102")

	var counter entity.BookingCounter
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("day = ?", day).
		First(&counter).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		// Two first-of-day transactions can both miss the row. The
		// conflict-tolerant insert lets the loser fall through to the
		// lock instead of failing on the primary key.
		counter = entity.BookingCounter{Day: day}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&counter).Error; err != nil {
			return 0, err
		}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("day = ?", day).
			First(&counter).Error; err != nil {
			return 0, err
		}
	}

	counter.LastSeq++
	counter.UpdatedAt = time.Now()
	if err := tx.Save(&counter).Error; err != nil {
		return 0, err
	}
	return counter.LastSeq, nil
}
