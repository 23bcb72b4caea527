package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock
}

// The first booking of a day finds no counter row. Two transactions can
// both take that branch, so the insert must tolerate the loser hitting an
// existing row and fall through to the lock instead of failing.
func TestNextSequenceFirstOfDay(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingCounterRepository()

	counterCols := []string{"day", "last_seq", "updated_at"}

	mock.ExpectQuery(`SELECT \* FROM "booking_counters" WHERE day = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(counterCols))
	mock.ExpectQuery(`INSERT INTO "booking_counters" .*ON CONFLICT DO NOTHING RETURNING "last_seq"`).
		WillReturnRows(sqlmock.NewRows([]string{"last_seq"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "booking_counters" WHERE day = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(counterCols).AddRow("20240615", 0, time.Now()))
	mock.ExpectExec(`UPDATE "booking_counters" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	seq, err := repo.NextSequence(db, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NextSequence: %v", err)
	}
	if seq != 1 {
		t.Errorf("seq = %d, want 1", seq)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestNextSequenceIncrementsExistingDay(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingCounterRepository()

	mock.ExpectQuery(`SELECT \* FROM "booking_counters" WHERE day = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"day", "last_seq", "updated_at"}).
			AddRow("20240615", 41, time.Now()))
	mock.ExpectExec(`UPDATE "booking_counters" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	seq, err := repo.NextSequence(db, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NextSequence: %v", err)
	}
	if seq != 42 {
		t.Errorf("seq = %d, want 42", seq)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
