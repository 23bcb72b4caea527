package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/Ariel200609/TuTurnoYa/internal/converter"
	"github.com/Ariel200609/TuTurnoYa/internal/delivery/dto"
	"github.com/Ariel200609/TuTurnoYa/internal/delivery/http/middleware"
	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"
	"github.com/Ariel200609/TuTurnoYa/internal/domain/repository"
	"github.com/Ariel200609/TuTurnoYa/pkg/jwt"
	"github.com/Ariel200609/TuTurnoYa/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrCourtNotManagedBy   = errors.New("court does not belong to your venue")
	ErrInvalidRules        = errors.New("availability or price rules are invalid")
	ErrBlockedSlotConflict = errors.New("the window overlaps an active booking")
)

type CourtUsecase interface {
	GetCourt(ctx context.Context, courtID uuid.UUID) (*dto.CourtResponse, error)
	UpdateAvailabilityRules(ctx context.Context, courtID uuid.UUID, req *dto.UpdateAvailabilityRulesRequest) (*dto.CourtResponse, error)
	UpdatePriceRules(ctx context.Context, courtID uuid.UUID, req *dto.UpdatePriceRulesRequest) (*dto.CourtResponse, error)
	BlockSlot(ctx context.Context, courtID uuid.UUID, req *dto.BlockSlotRequest) (*dto.CourtResponse, error)
	UnblockSlot(ctx context.Context, courtID uuid.UUID, req *dto.UnblockSlotRequest) (*dto.CourtResponse, error)
	SetMaintenance(ctx context.Context, courtID uuid.UUID, req *dto.SetMaintenanceRequest) (*dto.CourtResponse, error)
	GetDaySheet(ctx context.Context, courtID uuid.UUID, date time.Time) (*dto.DaySheetResponse, error)
}

type courtUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	courtRepo   repository.CourtRepository
	bookingRepo repository.BookingRepository
}

func NewCourtUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	courtRepo repository.CourtRepository,
	bookingRepo repository.BookingRepository,
) CourtUsecase {
	return &courtUsecase{
		db:          db,
		log:         log,
		courtRepo:   courtRepo,
		bookingRepo: bookingRepo,
	}
}

func (u *courtUsecase) GetCourt(ctx context.Context, courtID uuid.UUID) (*dto.CourtResponse, error) {
	court, err := u.findManagedCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}
	return converter.CourtToResponse(court), nil
}

// UpdateAvailabilityRules replaces the court's weekly schedule. Every open
// day must carry a valid open-before-close window.
func (u *courtUsecase) UpdateAvailabilityRules(ctx context.Context, courtID uuid.UUID, req *dto.UpdateAvailabilityRulesRequest) (*dto.CourtResponse, error) {
	court, err := u.findManagedCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	rules := entity.WeeklyAvailability{
		Monday:    dayRuleFromRequest(req.Monday),
		Tuesday:   dayRuleFromRequest(req.Tuesday),
		Wednesday: dayRuleFromRequest(req.Wednesday),
		Thursday:  dayRuleFromRequest(req.Thursday),
		Friday:    dayRuleFromRequest(req.Friday),
		Saturday:  dayRuleFromRequest(req.Saturday),
		Sunday:    dayRuleFromRequest(req.Sunday),
	}

	for _, rule := range []entity.DayRule{rules.Monday, rules.Tuesday, rules.Wednesday, rules.Thursday, rules.Friday, rules.Saturday, rules.Sunday} {
		if !rule.IsOpen {
			continue
		}
		window, err := rule.Window()
		if err != nil || !window.IsValid() {
			return nil, ErrInvalidRules
		}
	}

	court.AvailabilityRules = rules
	if err := u.courtRepo.Save(u.db.WithContext(ctx), court); err != nil {
		u.log.Warnf("Failed to update availability rules for court %s: %+v", courtID, err)
		return nil, err
	}

	u.log.Infof("Availability rules updated: court=%s", courtID)
	return converter.CourtToResponse(court), nil
}

// UpdatePriceRules replaces the base price and the multiplier table. All six
// buckets must be positive so pricing can never silently zero out.
func (u *courtUsecase) UpdatePriceRules(ctx context.Context, courtID uuid.UUID, req *dto.UpdatePriceRulesRequest) (*dto.CourtResponse, error) {
	court, err := u.findManagedCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	if !req.BasePrice.IsPositive() {
		return nil, ErrInvalidRules
	}
	rules := entity.PriceRules{
		Weekday: entity.DayPartMultipliers{
			Morning:   req.Weekday.Morning,
			Afternoon: req.Weekday.Afternoon,
			Night:     req.Weekday.Night,
		},
		Weekend: entity.DayPartMultipliers{
			Morning:   req.Weekend.Morning,
			Afternoon: req.Weekend.Afternoon,
			Night:     req.Weekend.Night,
		},
	}
	for _, m := range []entity.DayPartMultipliers{rules.Weekday, rules.Weekend} {
		if !m.Morning.IsPositive() || !m.Afternoon.IsPositive() || !m.Night.IsPositive() {
			return nil, ErrInvalidRules
		}
	}

	court.BasePrice = req.BasePrice
	court.PriceRules = rules
	if err := u.courtRepo.Save(u.db.WithContext(ctx), court); err != nil {
		u.log.Warnf("Failed to update price rules for court %s: %+v", courtID, err)
		return nil, err
	}

	u.log.Infof("Price rules updated: court=%s, base=%s", courtID, req.BasePrice)
	return converter.CourtToResponse(court), nil
}

// BlockSlot adds a blackout window. Refused when an active booking already
// holds any part of the window: the owner must cancel those bookings first.
func (u *courtUsecase) BlockSlot(ctx context.Context, courtID uuid.UUID, req *dto.BlockSlotRequest) (*dto.CourtResponse, error) {
	court, err := u.findManagedCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidTimeValue
	}
	window, err := timeslot.ParseRange(req.StartTime, req.EndTime)
	if err != nil || !window.IsValid() {
		return nil, ErrInvalidTimeValue
	}

	conflicts, err := u.bookingRepo.FindConflicting(u.db.WithContext(ctx), courtID, date, req.StartTime, req.EndTime, nil)
	if err != nil {
		u.log.Warnf("Failed to check bookings before blocking court %s: %+v", courtID, err)
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, ErrBlockedSlotConflict
	}

	court.BlockedSlots = append(court.BlockedSlots, entity.BlockedSlot{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	})
	if err := u.courtRepo.Save(u.db.WithContext(ctx), court); err != nil {
		u.log.Warnf("Failed to block slot on court %s: %+v", courtID, err)
		return nil, err
	}

	u.log.Infof("Slot blocked: court=%s, date=%s %s-%s", courtID, req.Date, req.StartTime, req.EndTime)
	return converter.CourtToResponse(court), nil
}

// UnblockSlot removes the blackout window matching date and start time.
func (u *courtUsecase) UnblockSlot(ctx context.Context, courtID uuid.UUID, req *dto.UnblockSlotRequest) (*dto.CourtResponse, error) {
	court, err := u.findManagedCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	remaining := make(entity.BlockedSlotList, 0, len(court.BlockedSlots))
	for _, slot := range court.BlockedSlots {
		if slot.Date == req.Date && slot.StartTime == req.StartTime {
			continue
		}
		remaining = append(remaining, slot)
	}
	court.BlockedSlots = remaining

	if err := u.courtRepo.Save(u.db.WithContext(ctx), court); err != nil {
		u.log.Warnf("Failed to unblock slot on court %s: %+v", courtID, err)
		return nil, err
	}

	u.log.Infof("Slot unblocked: court=%s, date=%s %s", courtID, req.Date, req.StartTime)
	return converter.CourtToResponse(court), nil
}

// SetMaintenance toggles maintenance mode. Existing bookings stay untouched;
// new ones are refused while the flag is on.
func (u *courtUsecase) SetMaintenance(ctx context.Context, courtID uuid.UUID, req *dto.SetMaintenanceRequest) (*dto.CourtResponse, error) {
	court, err := u.findManagedCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	court.MaintenanceMode = req.MaintenanceMode
	if err := u.courtRepo.Save(u.db.WithContext(ctx), court); err != nil {
		u.log.Warnf("Failed to set maintenance on court %s: %+v", courtID, err)
		return nil, err
	}

	u.log.Infof("Maintenance mode set: court=%s, on=%t", courtID, req.MaintenanceMode)
	return converter.CourtToResponse(court), nil
}

// GetDaySheet lists one court's active bookings for a date, the view a
// venue operator works from at the front desk.
func (u *courtUsecase) GetDaySheet(ctx context.Context, courtID uuid.UUID, date time.Time) (*dto.DaySheetResponse, error) {
	court, err := u.findManagedCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	// All statuses: the operator wants cancellations and no-shows visible
	// alongside the live schedule.
	bookings, err := u.bookingRepo.FindByCourtAndDate(u.db.WithContext(ctx), court.ID, date, nil)
	if err != nil {
		u.log.Warnf("Failed to load day sheet for court %s: %+v", courtID, err)
		return nil, err
	}

	entries := make([]dto.DaySheetEntry, len(bookings))
	for i := range bookings {
		entries[i] = dto.DaySheetEntry{
			Booking:     *converter.BookingToResponse(&bookings[i]),
			ContactName: bookings[i].ContactName,
			PlayerCount: bookings[i].PlayerCount,
		}
	}

	return &dto.DaySheetResponse{
		CourtID:  court.ID,
		Date:     date.Format("2006-01-02"),
		Bookings: entries,
		Total:    len(entries),
	}, nil
}

// findManagedCourt loads a court and verifies the caller operates it: the
// venue's owner or an admin.
func (u *courtUsecase) findManagedCourt(ctx context.Context, courtID uuid.UUID) (*entity.Court, error) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		return nil, errors.New("actor not found in context")
	}
	actorType, _ := middleware.GetActorTypeFromContext(ctx)

	court, err := u.courtRepo.FindByID(u.db.WithContext(ctx), courtID)
	if err != nil {
		u.log.Warnf("Failed to find court %s: %+v", courtID, err)
		return nil, err
	}
	if court == nil {
		return nil, ErrCourtNotFound
	}

	if actorType != jwt.ActorAdmin && court.Venue.OwnerID != actorID {
		return nil, ErrCourtNotManagedBy
	}

	return court, nil
}

func dayRuleFromRequest(req dto.DayRuleRequest) entity.DayRule {
	return entity.DayRule{Open: req.Open, Close: req.Close, IsOpen: req.IsOpen}
}
