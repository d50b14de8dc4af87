package repository

import (
	"messadmin/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMealsRejectsEmptySelection(t *testing.T) {
	db := newTestDB(t)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")

	repo := NewAttendanceRepository(db)
	_, err := repo.RecordMeals(testCtx(), &domain.MarkAttendanceRequest{
		TeacherID: teacher.TeacherID,
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
	}, 1)
	assert.ErrorIs(t, err, domain.ErrNoMealsSelected)
}

func TestRecordMealsRejectsInactiveTeacher(t *testing.T) {
	db := newTestDB(t)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")
	require.NoError(t, db.Model(&domain.Teacher{}).
		Where("teacher_id = ?", teacher.TeacherID).
		Update("is_active", false).Error)

	repo := NewAttendanceRepository(db)
	_, err := repo.RecordMeals(testCtx(), &domain.MarkAttendanceRequest{
		TeacherID: teacher.TeacherID,
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		MealFlags: domain.MealFlags{Lunch: true},
	}, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordMealsUpsertsSameDay(t *testing.T) {
	db := newTestDB(t)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")
	day := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)

	repo := NewAttendanceRepository(db)
	first, err := repo.RecordMeals(testCtx(), &domain.MarkAttendanceRequest{
		TeacherID: teacher.TeacherID,
		Date:      day,
		MealFlags: domain.MealFlags{Breakfast: true},
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), first.Date)

	second, err := repo.RecordMeals(testCtx(), &domain.MarkAttendanceRequest{
		TeacherID: teacher.TeacherID,
		Date:      day,
		MealFlags: domain.MealFlags{Lunch: true, Dinner: true},
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, first.AttendanceID, second.AttendanceID)
	assert.False(t, second.BreakfastTaken)
	assert.True(t, second.LunchTaken)
	assert.True(t, second.DinnerTaken)

	var count int64
	require.NoError(t, db.Model(&domain.Attendance{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEditMealsAdjustsUnpaidBill(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")

	billRepo := NewBillRepository(db)
	attRepo := NewAttendanceRepository(db)

	// bill June with 2 full days, then re-mark one of those days
	seedAttendance(t, db, teacher.TeacherID, 6, 2025, 2, 2, 2)
	bill, err := billRepo.Generate(testCtx(), teacher.TeacherID, 6, 2025, 1)
	require.NoError(t, err)
	mustDecimal(t, 280, bill.FoodBill)

	record, err := attRepo.RecordMeals(testCtx(), &domain.MarkAttendanceRequest{
		TeacherID: teacher.TeacherID,
		Date:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		MealFlags: domain.MealFlags{Breakfast: true, Lunch: true, Dinner: true},
	}, 1)
	require.NoError(t, err)

	// drop dinner: -50 on food, total and balance
	oldFlags, newFlags, err := attRepo.EditMeals(testCtx(), record.AttendanceID, &domain.UpdateAttendanceRequest{
		MealFlags: domain.MealFlags{Breakfast: true, Lunch: true},
	}, 1)
	require.NoError(t, err)
	assert.True(t, oldFlags.Dinner)
	assert.False(t, newFlags.Dinner)

	var updated domain.Bill
	require.NoError(t, db.First(&updated, bill.BillID).Error)
	mustDecimal(t, 230, updated.FoodBill)
	mustDecimal(t, -50, updated.UnpaidBalance)
	assert.Equal(t, bill.TotalMealsConsumed-1, updated.TotalMealsConsumed)
}

func TestDeleteRecordWithoutBillLeavesNoTrace(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")

	repo := NewAttendanceRepository(db)
	record, err := repo.RecordMeals(testCtx(), &domain.MarkAttendanceRequest{
		TeacherID: teacher.TeacherID,
		Date:      time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		MealFlags: domain.MealFlags{Breakfast: true},
	}, 1)
	require.NoError(t, err)

	deleted, err := repo.DeleteRecord(testCtx(), record.AttendanceID, 0)
	require.NoError(t, err)
	assert.Equal(t, record.AttendanceID, deleted.AttendanceID)

	var count int64
	require.NoError(t, db.Model(&domain.Attendance{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteRecordOwnerRestriction(t *testing.T) {
	db := newTestDB(t)
	owner := seedTeacher(t, db, "Asha Verma", "asha@example.edu")
	other := seedTeacher(t, db, "Bilal Khan", "bilal@example.edu")

	repo := NewAttendanceRepository(db)
	record, err := repo.RecordMeals(testCtx(), &domain.MarkAttendanceRequest{
		TeacherID: owner.TeacherID,
		Date:      time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		MealFlags: domain.MealFlags{Dinner: true},
	}, 1)
	require.NoError(t, err)

	_, err = repo.DeleteRecord(testCtx(), record.AttendanceID, other.TeacherID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.DeleteRecord(testCtx(), record.AttendanceID, owner.TeacherID)
	assert.NoError(t, err)
}

// A settled bill never changes its total; removing a billed day instead
// writes the refund into the unpaid balance as a credit. The credit replaces
// whatever balance was there, it does not accumulate.
func TestDeleteRecordPaidBillCreditOverwrites(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")

	billRepo := NewBillRepository(db)
	attRepo := NewAttendanceRepository(db)

	seedAttendance(t, db, teacher.TeacherID, 6, 2025, 3, 0, 0)
	bill, err := billRepo.Generate(testCtx(), teacher.TeacherID, 6, 2025, 1)
	require.NoError(t, err)
	_, err = billRepo.MarkPaid(testCtx(), bill.BillID)
	require.NoError(t, err)

	// two post-payment records land in the already-billed period
	first, err := attRepo.RecordMeals(testCtx(), &domain.MarkAttendanceRequest{
		TeacherID: teacher.TeacherID,
		Date:      time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		MealFlags: domain.MealFlags{Breakfast: true},
	}, 1)
	require.NoError(t, err)
	second, err := attRepo.RecordMeals(testCtx(), &domain.MarkAttendanceRequest{
		TeacherID: teacher.TeacherID,
		Date:      time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC),
		MealFlags: domain.MealFlags{Dinner: true},
	}, 1)
	require.NoError(t, err)

	_, err = attRepo.DeleteRecord(testCtx(), first.AttendanceID, 0)
	require.NoError(t, err)

	var afterFirst domain.Bill
	require.NoError(t, db.First(&afterFirst, bill.BillID).Error)
	mustDecimal(t, -30, afterFirst.UnpaidBalance)

	_, err = attRepo.DeleteRecord(testCtx(), second.AttendanceID, 0)
	require.NoError(t, err)

	var afterSecond domain.Bill
	require.NoError(t, db.First(&afterSecond, bill.BillID).Error)
	// last write wins: -50, not -80
	mustDecimal(t, -50, afterSecond.UnpaidBalance)
	// the settled total is untouched either way
	assert.True(t, afterSecond.TotalBill.Equal(afterFirst.TotalBill))
	assert.True(t, afterSecond.IsPaid)
}

func TestMonthlyReportAggregates(t *testing.T) {
	db := newTestDB(t)
	teacherA := seedTeacher(t, db, "Asha Verma", "asha@example.edu")
	teacherB := seedTeacher(t, db, "Bilal Khan", "bilal@example.edu")
	seedAttendance(t, db, teacherA.TeacherID, 6, 2025, 2, 2, 0)
	seedAttendance(t, db, teacherB.TeacherID, 6, 2025, 1, 0, 1)

	repo := NewAttendanceRepository(db)
	report, err := repo.MonthlyReport(testCtx(), 6, 2025)
	require.NoError(t, err)

	assert.Equal(t, 6, report.Month)
	assert.Equal(t, 2025, report.Year)
	require.Len(t, report.Teachers, 2)

	assert.Equal(t, teacherA.TeacherID, report.Teachers[0].TeacherID)
	assert.Equal(t, "Asha Verma", report.Teachers[0].TeacherName)
	assert.Equal(t, 2, report.Teachers[0].TotalBreakfast)
	assert.Equal(t, 2, report.Teachers[0].TotalLunch)
	assert.Equal(t, 4, report.Teachers[0].TotalMeals)

	assert.Equal(t, 2, report.Teachers[1].TotalMeals)

	// both teachers marked on day one
	require.NotEmpty(t, report.Days)
	assert.Equal(t, 2, report.Days[0].TeachersCount)
}

func TestAnyOnDate(t *testing.T) {
	db := newTestDB(t)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")

	repo := NewAttendanceRepository(db)
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	marked, err := repo.AnyOnDate(testCtx(), day)
	require.NoError(t, err)
	assert.False(t, marked)

	_, err = repo.RecordMeals(testCtx(), &domain.MarkAttendanceRequest{
		TeacherID: teacher.TeacherID,
		Date:      day,
		MealFlags: domain.MealFlags{Lunch: true},
	}, 1)
	require.NoError(t, err)

	marked, err = repo.AnyOnDate(testCtx(), day)
	require.NoError(t, err)
	assert.True(t, marked)
}
