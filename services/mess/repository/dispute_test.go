package repository

import (
	"messadmin/domain"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileDisputeRequiresOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := seedTeacher(t, db, "Asha Verma", "asha@example.edu")
	other := seedTeacher(t, db, "Bilal Khan", "bilal@example.edu")

	attRepo := NewAttendanceRepository(db)
	record, err := attRepo.RecordMeals(testCtx(), &domain.MarkAttendanceRequest{
		TeacherID: owner.TeacherID,
		Date:      time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		MealFlags: domain.MealFlags{Lunch: true},
	}, 1)
	require.NoError(t, err)

	repo := NewDisputeRepository(db)
	_, err = repo.FileDispute(testCtx(), record.AttendanceID, other.TeacherID, "not my meal")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	dispute, err := repo.FileDispute(testCtx(), record.AttendanceID, owner.TeacherID, "did not eat lunch")
	require.NoError(t, err)
	assert.Equal(t, domain.DisputePending, dispute.Status)
}

func TestFileDisputeRejectsSecondPending(t *testing.T) {
	db := newTestDB(t)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")

	attRepo := NewAttendanceRepository(db)
	record, err := attRepo.RecordMeals(testCtx(), &domain.MarkAttendanceRequest{
		TeacherID: teacher.TeacherID,
		Date:      time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		MealFlags: domain.MealFlags{Dinner: true},
	}, 1)
	require.NoError(t, err)

	repo := NewDisputeRepository(db)
	_, err = repo.FileDispute(testCtx(), record.AttendanceID, teacher.TeacherID, "wrong day")
	require.NoError(t, err)

	_, err = repo.FileDispute(testCtx(), record.AttendanceID, teacher.TeacherID, "still wrong")
	assert.ErrorIs(t, err, domain.ErrDuplicatePending)
}

func TestResolveRejectKeepsAttendanceAndAllowsRefile(t *testing.T) {
	db := newTestDB(t)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")

	attRepo := NewAttendanceRepository(db)
	record, err := attRepo.RecordMeals(testCtx(), &domain.MarkAttendanceRequest{
		TeacherID: teacher.TeacherID,
		Date:      time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		MealFlags: domain.MealFlags{Breakfast: true},
	}, 1)
	require.NoError(t, err)

	repo := NewDisputeRepository(db)
	dispute, err := repo.FileDispute(testCtx(), record.AttendanceID, teacher.TeacherID, "wrong day")
	require.NoError(t, err)

	notes := "records say otherwise"
	resolved, err := repo.Resolve(testCtx(), dispute.DisputeID, "Reject", &notes, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.DisputeRejected, resolved.Status)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, 9, *resolved.ResolvedBy)

	// the attendance record survives a rejection
	var count int64
	require.NoError(t, db.Model(&domain.Attendance{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// a rejected dispute does not block a new one
	_, err = repo.FileDispute(testCtx(), record.AttendanceID, teacher.TeacherID, "second attempt")
	assert.NoError(t, err)
}

func TestResolveTwiceFails(t *testing.T) {
	db := newTestDB(t)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")

	attRepo := NewAttendanceRepository(db)
	record, err := attRepo.RecordMeals(testCtx(), &domain.MarkAttendanceRequest{
		TeacherID: teacher.TeacherID,
		Date:      time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		MealFlags: domain.MealFlags{Breakfast: true},
	}, 1)
	require.NoError(t, err)

	repo := NewDisputeRepository(db)
	dispute, err := repo.FileDispute(testCtx(), record.AttendanceID, teacher.TeacherID, "wrong day")
	require.NoError(t, err)

	_, err = repo.Resolve(testCtx(), dispute.DisputeID, "Reject", nil, 9)
	require.NoError(t, err)

	_, err = repo.Resolve(testCtx(), dispute.DisputeID, "Approve", nil, 9)
	assert.ErrorIs(t, err, domain.ErrAlreadyResolved)
}

func TestResolveApproveDeletesAttendanceAndAdjustsBill(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")

	billRepo := NewBillRepository(db)
	attRepo := NewAttendanceRepository(db)

	seedAttendance(t, db, teacher.TeacherID, 6, 2025, 2, 2, 2)
	bill, err := billRepo.Generate(testCtx(), teacher.TeacherID, 6, 2025, 1)
	require.NoError(t, err)

	// a disputed record re-marked inside the billed period
	record, err := attRepo.RecordMeals(testCtx(), &domain.MarkAttendanceRequest{
		TeacherID: teacher.TeacherID,
		Date:      time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		MealFlags: domain.MealFlags{Lunch: true},
	}, 1)
	require.NoError(t, err)

	repo := NewDisputeRepository(db)
	dispute, err := repo.FileDispute(testCtx(), record.AttendanceID, teacher.TeacherID, "was on leave")
	require.NoError(t, err)

	resolved, err := repo.Resolve(testCtx(), dispute.DisputeID, "Approve", nil, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.DisputeApproved, resolved.Status)

	// the record is gone
	var count int64
	require.NoError(t, db.Model(&domain.Attendance{}).
		Where("attendance_id = ?", record.AttendanceID).Count(&count).Error)
	assert.Zero(t, count)

	// and the unpaid bill refunds the lunch
	var updated domain.Bill
	require.NoError(t, db.First(&updated, bill.BillID).Error)
	mustDecimal(t, -60, updated.UnpaidBalance)
	assert.True(t, updated.TotalBill.Equal(bill.TotalBill.Sub(decimal.NewFromInt(60))))
}
