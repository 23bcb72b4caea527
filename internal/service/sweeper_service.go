package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Ariel200609/TuTurnoYa/config"
	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"
	"github.com/Ariel200609/TuTurnoYa/internal/domain/repository"
	"github.com/Ariel200609/TuTurnoYa/pkg/clock"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SweeperService runs the periodic booking sweeps: 24h reminders and
// no-show detection. One goroutine, one ticker; both sweeps are idempotent
// so overlapping deployments cannot double-fire.
type SweeperService struct {
	db           *gorm.DB
	log          *logrus.Logger
	clock        clock.Clock
	bookingRepo  repository.BookingRepository
	notification NotificationService

	interval    time.Duration
	noShowGrace time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewSweeperService(
	db *gorm.DB,
	log *logrus.Logger,
	clk clock.Clock,
	bookingRepo repository.BookingRepository,
	notification NotificationService,
	cfg config.BookingConfig,
) *SweeperService {
	return &SweeperService{
		db:           db,
		log:          log,
		clock:        clk,
		bookingRepo:  bookingRepo,
		notification: notification,
		interval:     cfg.SweepInterval,
		noShowGrace:  cfg.NoShowGrace,
		stopChan:     make(chan struct{}),
	}
}

// Start launches the sweep loop. Call Stop() during graceful shutdown.
func (s *SweeperService) Start() {
	s.wg.Add(1)
	go s.loop()
	s.log.Infof("Booking sweeper started: interval=%s, no-show grace=%s", s.interval, s.noShowGrace)
}

// Stop shuts the sweeper down. Safe to call multiple times.
func (s *SweeperService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("Booking sweeper stopped")
	}
}

func (s *SweeperService) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), s.interval)
			s.SweepReminders(ctx)
			s.SweepNoShows(ctx)
			cancel()
		}
	}
}

// SweepReminders sends the pre-game notice for bookings starting within the
// next 24 hours. The guarded reminder stamp makes concurrent sweeps send at
// most one notice per booking.
func (s *SweeperService) SweepReminders(ctx context.Context) {
	now := s.clock.Now()

	candidates, err := s.bookingRepo.FindReminderDue(s.db.WithContext(ctx), now)
	if err != nil {
		s.log.Warnf("Reminder sweep query failed: %+v", err)
		return
	}

	sent := 0
	for i := range candidates {
		booking := &candidates[i]
		if !booking.ShouldSendReminder(now) {
			continue
		}

		rows, err := s.bookingRepo.MarkReminderSent(s.db.WithContext(ctx), booking.ID, now)
		if err != nil {
			s.log.Warnf("Failed to stamp reminder for booking %s: %+v", booking.ID, err)
			continue
		}
		if rows == 0 {
			// Another sweep got there first.
			continue
		}

		s.notification.BookingReminder(ctx, booking)
		sent++
	}

	if sent > 0 {
		s.log.Infof("Reminder sweep sent %d notices", sent)
	}
}

// SweepNoShows moves confirmed, never-checked-in bookings whose window plus
// grace has elapsed into no_show. Paid bookings are left alone: payment is
// treated as proof of intent and settled separately.
func (s *SweeperService) SweepNoShows(ctx context.Context) {
	cutoff := s.clock.Now().Add(-s.noShowGrace)

	candidates, err := s.bookingRepo.FindNoShowCandidates(s.db.WithContext(ctx), cutoff)
	if err != nil {
		s.log.Warnf("No-show sweep query failed: %+v", err)
		return
	}

	marked := 0
	for i := range candidates {
		booking := &candidates[i]
		if !booking.CanTransitionTo(entity.BookingStatusNoShow) {
			continue
		}

		// Guarded by status so a concurrent check-in or completion wins.
		result := s.db.WithContext(ctx).Model(&entity.Booking{}).
			Where("id = ? AND status = ? AND check_in_at IS NULL", booking.ID, entity.BookingStatusConfirmed).
			Update("status", entity.BookingStatusNoShow)
		if result.Error != nil {
			s.log.Warnf("Failed to mark booking %s as no-show: %+v", booking.ID, result.Error)
			continue
		}
		if result.RowsAffected > 0 {
			marked++
		}
	}

	if marked > 0 {
		s.log.Infof("No-show sweep marked %d bookings", marked)
	}
}
