package repository

import (
	"errors"
	"messadmin/domain"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateComputesFoodWaterAndTotal(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db)
	teacherA := seedTeacher(t, db, "Asha Verma", "asha@example.edu")
	seedTeacher(t, db, "Bilal Khan", "bilal@example.edu")

	// 20 breakfasts, 15 lunches, 10 dinners in June
	seedAttendance(t, db, teacherA.TeacherID, 6, 2025, 20, 15, 10)

	repo := NewBillRepository(db)
	bill, err := repo.Generate(testCtx(), teacherA.TeacherID, 6, 2025, 1)
	require.NoError(t, err)

	mustDecimal(t, 2000, bill.FoodBill)
	mustDecimal(t, 2500, bill.WaterBill)
	mustDecimal(t, 4500, bill.TotalBill)
	assert.Equal(t, 45, bill.TotalMealsConsumed)
	assert.False(t, bill.IsPaid)
	mustDecimal(t, 0, bill.UnpaidBalance)

	// billed attendance is purged
	var remaining int64
	require.NoError(t, db.Model(&domain.Attendance{}).
		Where("teacher_id = ?", teacherA.TeacherID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestGenerateWithoutConfigFails(t *testing.T) {
	db := newTestDB(t)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")

	repo := NewBillRepository(db)
	_, err := repo.Generate(testCtx(), teacher.TeacherID, 6, 2025, 1)
	assert.ErrorIs(t, err, domain.ErrConfigMissing)
}

func TestGenerateOverwritesUnpaidBillInPlace(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")
	seedAttendance(t, db, teacher.TeacherID, 6, 2025, 5, 0, 0)

	repo := NewBillRepository(db)
	first, err := repo.Generate(testCtx(), teacher.TeacherID, 6, 2025, 1)
	require.NoError(t, err)
	mustDecimal(t, 150, first.FoodBill)

	// more attendance marked after the first run, then regenerate
	seedAttendance(t, db, teacher.TeacherID, 6, 2025, 0, 3, 0)
	second, err := repo.Generate(testCtx(), teacher.TeacherID, 6, 2025, 1)
	require.NoError(t, err)

	assert.Equal(t, first.BillID, second.BillID)
	mustDecimal(t, 180, second.FoodBill)

	var count int64
	require.NoError(t, db.Model(&domain.Bill{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGenerateRefusesPaidPeriod(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")
	seedAttendance(t, db, teacher.TeacherID, 6, 2025, 2, 0, 0)

	repo := NewBillRepository(db)
	bill, err := repo.Generate(testCtx(), teacher.TeacherID, 6, 2025, 1)
	require.NoError(t, err)

	_, err = repo.MarkPaid(testCtx(), bill.BillID)
	require.NoError(t, err)

	_, err = repo.Generate(testCtx(), teacher.TeacherID, 6, 2025, 1)
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
}

func TestGenerateCarriesForwardUnpaidBalance(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")

	// June: 5 breakfasts -> food 150, water 5000, total 5150, never paid
	seedAttendance(t, db, teacher.TeacherID, 6, 2025, 5, 0, 0)
	repo := NewBillRepository(db)
	june, err := repo.Generate(testCtx(), teacher.TeacherID, 6, 2025, 1)
	require.NoError(t, err)

	// leave a concrete outstanding balance on June
	require.NoError(t, db.Model(&domain.Bill{}).
		Where("bill_id = ?", june.BillID).
		Update("unpaid_balance", decimal.NewFromInt(300)).Error)

	// July: 2 dinners -> food 100
	seedAttendance(t, db, teacher.TeacherID, 7, 2025, 0, 0, 2)
	july, err := repo.Generate(testCtx(), teacher.TeacherID, 7, 2025, 1)
	require.NoError(t, err)

	mustDecimal(t, 100, july.FoodBill)
	mustDecimal(t, 300, july.UnpaidBalance)
	// food 100 + water 5000 + carry 300
	mustDecimal(t, 5400, july.TotalBill)
}

func TestGenerateSingleTeacherCarriesFullWaterShare(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")
	seedAttendance(t, db, teacher.TeacherID, 6, 2025, 1, 0, 0)

	repo := NewBillRepository(db)
	bill, err := repo.Generate(testCtx(), teacher.TeacherID, 6, 2025, 1)
	require.NoError(t, err)

	// the sole active teacher carries the whole water bill
	mustDecimal(t, 5000, bill.WaterBill)
}

func TestMarkPaidZeroesBalanceAndPurgesPeriod(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")
	seedAttendance(t, db, teacher.TeacherID, 6, 2025, 3, 3, 3)

	repo := NewBillRepository(db)
	bill, err := repo.Generate(testCtx(), teacher.TeacherID, 6, 2025, 1)
	require.NoError(t, err)

	require.NoError(t, db.Model(&domain.Bill{}).
		Where("bill_id = ?", bill.BillID).
		Update("unpaid_balance", decimal.NewFromInt(120)).Error)

	paid, err := repo.MarkPaid(testCtx(), bill.BillID)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	assert.NotNil(t, paid.PaidDate)
	mustDecimal(t, 0, paid.UnpaidBalance)

	_, err = repo.MarkPaid(testCtx(), bill.BillID)
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
}

func TestConcurrentMarkPaidSettlesExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")
	seedAttendance(t, db, teacher.TeacherID, 6, 2025, 2, 0, 0)

	repo := NewBillRepository(db)
	bill, err := repo.Generate(testCtx(), teacher.TeacherID, 6, 2025, 1)
	require.NoError(t, err)

	const attempts = 4
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.MarkPaid(testCtx(), bill.BillID)
		}(i)
	}
	wg.Wait()

	var settled, refused int
	for _, err := range errs {
		switch {
		case err == nil:
			settled++
		case errors.Is(err, domain.ErrAlreadyPaid):
			refused++
		default:
			t.Fatalf("unexpected settle error: %v", err)
		}
	}
	assert.Equal(t, 1, settled)
	assert.Equal(t, attempts-1, refused)
}

func TestGetBillForPeriodFindsAnyPaidState(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")
	seedAttendance(t, db, teacher.TeacherID, 6, 2025, 1, 0, 0)

	repo := NewBillRepository(db)
	_, err := repo.GetBillForPeriod(testCtx(), teacher.TeacherID, 6, 2025)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	bill, err := repo.Generate(testCtx(), teacher.TeacherID, 6, 2025, 1)
	require.NoError(t, err)

	found, err := repo.GetBillForPeriod(testCtx(), teacher.TeacherID, 6, 2025)
	require.NoError(t, err)
	assert.Equal(t, bill.BillID, found.BillID)

	_, err = repo.MarkPaid(testCtx(), bill.BillID)
	require.NoError(t, err)

	found, err = repo.GetBillForPeriod(testCtx(), teacher.TeacherID, 6, 2025)
	require.NoError(t, err)
	assert.True(t, found.IsPaid)
}

func TestSettlePaymentRecordsMetadata(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")
	seedAttendance(t, db, teacher.TeacherID, 6, 2025, 1, 1, 1)

	repo := NewBillRepository(db)
	bill, err := repo.Generate(testCtx(), teacher.TeacherID, 6, 2025, 1)
	require.NoError(t, err)

	paid, err := repo.SettlePayment(testCtx(), bill.BillID, teacher.TeacherID, "TXN20250701120000", "Card")
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	require.NotNil(t, paid.TransactionID)
	assert.Equal(t, "TXN20250701120000", *paid.TransactionID)
	require.NotNil(t, paid.PaymentMethod)
	assert.Equal(t, "Card", *paid.PaymentMethod)
}

func TestSettlePaymentWrongTeacherFails(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db)
	owner := seedTeacher(t, db, "Asha Verma", "asha@example.edu")
	other := seedTeacher(t, db, "Bilal Khan", "bilal@example.edu")
	seedAttendance(t, db, owner.TeacherID, 6, 2025, 1, 0, 0)

	repo := NewBillRepository(db)
	bill, err := repo.Generate(testCtx(), owner.TeacherID, 6, 2025, 1)
	require.NoError(t, err)

	_, err = repo.SettlePayment(testCtx(), bill.BillID, other.TeacherID, "TXN1", "Card")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStampPaymentTokenRefusesPaidBill(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")
	seedAttendance(t, db, teacher.TeacherID, 6, 2025, 1, 0, 0)

	repo := NewBillRepository(db)
	bill, err := repo.Generate(testCtx(), teacher.TeacherID, 6, 2025, 1)
	require.NoError(t, err)

	stamped, err := repo.StampPaymentToken(testCtx(), bill.BillID, teacher.TeacherID, "ABCDEF0123456789")
	require.NoError(t, err)
	require.NotNil(t, stamped.PaymentToken)
	assert.Equal(t, "ABCDEF0123456789", *stamped.PaymentToken)

	_, err = repo.MarkPaid(testCtx(), bill.BillID)
	require.NoError(t, err)

	_, err = repo.StampPaymentToken(testCtx(), bill.BillID, teacher.TeacherID, "FFFF")
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
}

func TestDeleteBillOnlyWhenPaid(t *testing.T) {
	db := newTestDB(t)
	seedConfig(t, db)
	teacher := seedTeacher(t, db, "Asha Verma", "asha@example.edu")
	seedAttendance(t, db, teacher.TeacherID, 6, 2025, 1, 0, 0)

	repo := NewBillRepository(db)
	bill, err := repo.Generate(testCtx(), teacher.TeacherID, 6, 2025, 1)
	require.NoError(t, err)

	err = repo.DeleteBill(testCtx(), bill.BillID)
	require.Error(t, err)

	_, err = repo.MarkPaid(testCtx(), bill.BillID)
	require.NoError(t, err)
	require.NoError(t, repo.DeleteBill(testCtx(), bill.BillID))

	assert.ErrorIs(t, repo.DeleteBill(testCtx(), bill.BillID), domain.ErrNotFound)
}
