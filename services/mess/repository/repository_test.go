package repository

import (
	"context"
	"messadmin/domain"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.BillingConfiguration{},
		&domain.MenuItem{},
		&domain.Teacher{},
		&domain.Attendance{},
		&domain.Bill{},
		&domain.AttendanceDispute{},
	))
	return db
}

func seedConfig(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&domain.BillingConfiguration{
		MonthlyWaterBillTotal: decimal.NewFromInt(5000),
		BreakfastRate:         decimal.NewFromInt(30),
		LunchRate:             decimal.NewFromInt(60),
		DinnerRate:            decimal.NewFromInt(50),
		LastUpdated:           time.Now(),
	}).Error)
}

func seedTeacher(t *testing.T, db *gorm.DB, name, email string) *domain.Teacher {
	t.Helper()
	teacher := &domain.Teacher{
		FullName:    name,
		Email:       email,
		PhoneNumber: "0100000000",
		Department:  "Mathematics",
		JoiningDate: time.Now(),
		IsActive:    true,
	}
	require.NoError(t, db.Create(teacher).Error)
	return teacher
}

// seedAttendance inserts flagged records on consecutive days of the month.
func seedAttendance(t *testing.T, db *gorm.DB, teacherID, month, year int, breakfasts, lunches, dinners int) {
	t.Helper()

	days := breakfasts
	if lunches > days {
		days = lunches
	}
	if dinners > days {
		days = dinners
	}
	for i := 0; i < days; i++ {
		record := domain.Attendance{
			TeacherID:      teacherID,
			Date:           time.Date(year, time.Month(month), i+1, 0, 0, 0, 0, time.UTC),
			BreakfastTaken: i < breakfasts,
			LunchTaken:     i < lunches,
			DinnerTaken:    i < dinners,
			RecordedDate:   time.Now(),
		}
		require.NoError(t, db.Create(&record).Error)
	}
}

func mustDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, decimal.NewFromInt(want).Equal(got), "want %d, got %s", want, got)
}

func testCtx() context.Context {
	return context.Background()
}
