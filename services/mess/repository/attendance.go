package repository

import (
	"context"
	"errors"
	"fmt"
	"messadmin/domain"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type attendanceRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAttendanceRepository(database *gorm.DB) domain.AttendanceRepo {
	return &attendanceRepository{db: database, now: time.Now}
}

// RecordMeals upserts the (teacher, day) record. Marking the same day twice
// overwrites the flags rather than erroring; the unique index absorbs the
// race between concurrent marks.
func (ar *attendanceRepository) RecordMeals(ctx context.Context, req *domain.MarkAttendanceRequest, recordedBy int) (*domain.Attendance, error) {
	if !req.MealFlags.Any() {
		return nil, domain.ErrNoMealsSelected
	}

	var teacher domain.Teacher
	err := ar.db.WithContext(ctx).
		Where("teacher_id = ? AND is_active = ?", req.TeacherID, true).
		First(&teacher).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("teacher not found or inactive: %w", domain.ErrNotFound)
		}
		return nil, err
	}

	day := req.Date
	if day.IsZero() {
		day = ar.now()
	}
	day = dayOf(day)

	attendance := domain.Attendance{
		TeacherID:      req.TeacherID,
		Date:           day,
		BreakfastTaken: req.Breakfast,
		LunchTaken:     req.Lunch,
		DinnerTaken:    req.Dinner,
		Remarks:        req.Remarks,
		RecordedBy:     &recordedBy,
		RecordedDate:   ar.now(),
	}

	err = ar.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "teacher_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"breakfast_taken", "lunch_taken", "dinner_taken",
			"remarks", "recorded_by", "recorded_date",
		}),
	}).Create(&attendance).Error
	if err != nil {
		return nil, fmt.Errorf("could not record attendance: %w", err)
	}

	// The upsert path leaves AttendanceID zero when the row already existed.
	if attendance.AttendanceID == 0 {
		if err := ar.db.WithContext(ctx).
			Where("teacher_id = ? AND date = ?", req.TeacherID, day).
			First(&attendance).Error; err != nil {
			return nil, fmt.Errorf("could not reload attendance: %w", err)
		}
	}
	return &attendance, nil
}

func (ar *attendanceRepository) EditMeals(ctx context.Context, attendanceID int, req *domain.UpdateAttendanceRequest, recordedBy int) (domain.MealFlags, domain.MealFlags, error) {
	var oldFlags, newFlags domain.MealFlags
	if !req.MealFlags.Any() {
		return oldFlags, newFlags, domain.ErrNoMealsSelected
	}

	tx := ar.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return oldFlags, newFlags, fmt.Errorf("could not begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var attendance domain.Attendance
	if err := tx.Where("attendance_id = ?", attendanceID).First(&attendance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return oldFlags, newFlags, domain.ErrNotFound
		}
		return oldFlags, newFlags, err
	}

	oldFlags = attendance.Flags()
	newFlags = req.MealFlags

	key := billPeriodKey(attendance.TeacherID, int(attendance.Date.Month()), attendance.Date.Year())
	billLocks.Lock(key)
	defer billLocks.Unlock(key)

	attendance.SetFlags(newFlags)
	if req.Remarks != nil {
		attendance.Remarks = req.Remarks
	}
	attendance.RecordedBy = &recordedBy
	attendance.RecordedDate = ar.now()
	if err := tx.Save(&attendance).Error; err != nil {
		return oldFlags, newFlags, fmt.Errorf("could not update attendance: %w", err)
	}

	if err := applyBillAdjustment(tx, attendance.TeacherID, attendance.Date, oldFlags, newFlags); err != nil {
		return oldFlags, newFlags, err
	}

	if err := tx.Commit().Error; err != nil {
		return oldFlags, newFlags, fmt.Errorf("could not commit attendance edit: %w", err)
	}
	return oldFlags, newFlags, nil
}

func (ar *attendanceRepository) DeleteRecord(ctx context.Context, attendanceID int, ownerTeacherID int) (*domain.Attendance, error) {
	tx := ar.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var attendance domain.Attendance
	q := tx.Where("attendance_id = ?", attendanceID)
	if ownerTeacherID > 0 {
		q = q.Where("teacher_id = ?", ownerTeacherID)
	}
	if err := q.First(&attendance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	key := billPeriodKey(attendance.TeacherID, int(attendance.Date.Month()), attendance.Date.Year())
	billLocks.Lock(key)
	defer billLocks.Unlock(key)

	// Disputes referencing the record go with it.
	if err := tx.Where("attendance_id = ?", attendanceID).
		Delete(&domain.AttendanceDispute{}).Error; err != nil {
		return nil, fmt.Errorf("could not delete related disputes: %w", err)
	}

	if err := tx.Delete(&attendance).Error; err != nil {
		return nil, fmt.Errorf("could not delete attendance: %w", err)
	}

	if err := applyBillAdjustment(tx, attendance.TeacherID, attendance.Date, attendance.Flags(), domain.MealFlags{}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("could not commit attendance deletion: %w", err)
	}
	return &attendance, nil
}

func (ar *attendanceRepository) ListByDate(ctx context.Context, date time.Time) (*[]domain.Attendance, error) {
	var attendances []domain.Attendance
	err := ar.db.WithContext(ctx).Preload("Teacher").
		Where("date = ?", dayOf(date)).
		Order("teacher_id ASC").
		Find(&attendances).Error
	if err != nil {
		return nil, fmt.Errorf("could not get attendance for date: %w", err)
	}
	return &attendances, nil
}

func (ar *attendanceRepository) ListPeriod(ctx context.Context, teacherID, month, year int) (*[]domain.Attendance, error) {
	start, next := monthRange(month, year)
	var attendances []domain.Attendance
	err := ar.db.WithContext(ctx).
		Where("teacher_id = ? AND date >= ? AND date < ?", teacherID, start, next).
		Order("date ASC").
		Find(&attendances).Error
	if err != nil {
		return nil, fmt.Errorf("could not get attendance for period: %w", err)
	}
	return &attendances, nil
}

func (ar *attendanceRepository) ListRange(ctx context.Context, teacherID int, from, to time.Time) (*[]domain.Attendance, error) {
	var attendances []domain.Attendance
	err := ar.db.WithContext(ctx).
		Where("teacher_id = ? AND date >= ? AND date <= ?", teacherID, dayOf(from), dayOf(to)).
		Order("date DESC").
		Find(&attendances).Error
	if err != nil {
		return nil, fmt.Errorf("could not get attendance range: %w", err)
	}
	return &attendances, nil
}

func (ar *attendanceRepository) AnyOnDate(ctx context.Context, date time.Time) (bool, error) {
	var count int64
	err := ar.db.WithContext(ctx).Model(&domain.Attendance{}).
		Where("date = ?", dayOf(date)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("could not count attendance for date: %w", err)
	}
	return count > 0, nil
}

// MonthlyReport aggregates the month's attendance per teacher and per day.
// The rollup runs in Go; the data set is one month of rows.
func (ar *attendanceRepository) MonthlyReport(ctx context.Context, month, year int) (*domain.MonthlyAttendanceReport, error) {
	start, next := monthRange(month, year)
	var attendances []domain.Attendance
	err := ar.db.WithContext(ctx).Preload("Teacher").
		Where("date >= ? AND date < ?", start, next).
		Find(&attendances).Error
	if err != nil {
		return nil, fmt.Errorf("could not load attendance for report: %w", err)
	}

	teacherRows := make(map[int]*domain.TeacherMealSummary)
	dayRows := make(map[time.Time]*domain.DailyMealSummary)
	for _, a := range attendances {
		row, ok := teacherRows[a.TeacherID]
		if !ok {
			row = &domain.TeacherMealSummary{TeacherID: a.TeacherID}
			if a.Teacher != nil {
				row.TeacherName = a.Teacher.FullName
			}
			teacherRows[a.TeacherID] = row
		}
		day, ok := dayRows[a.Date]
		if !ok {
			day = &domain.DailyMealSummary{Date: a.Date}
			dayRows[a.Date] = day
		}
		day.TeachersCount++

		meals := a.Flags().Count()
		row.TotalMeals += meals
		day.TotalMeals += meals
		if a.BreakfastTaken {
			row.TotalBreakfast++
		}
		if a.LunchTaken {
			row.TotalLunch++
		}
		if a.DinnerTaken {
			row.TotalDinner++
		}
	}

	report := &domain.MonthlyAttendanceReport{
		Month:    month,
		Year:     year,
		Teachers: make([]domain.TeacherMealSummary, 0, len(teacherRows)),
		Days:     make([]domain.DailyMealSummary, 0, len(dayRows)),
	}
	for _, row := range teacherRows {
		report.Teachers = append(report.Teachers, *row)
	}
	for _, day := range dayRows {
		report.Days = append(report.Days, *day)
	}
	sort.Slice(report.Teachers, func(i, j int) bool {
		return report.Teachers[i].TeacherID < report.Teachers[j].TeacherID
	})
	sort.Slice(report.Days, func(i, j int) bool {
		return report.Days[i].Date.Before(report.Days[j].Date)
	})
	return report, nil
}
