package repository

import (
	"context"
	"errors"
	"fmt"
	"messadmin/domain"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type billRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewBillRepository(database *gorm.DB) domain.BillRepo {
	return &billRepository{db: database, now: time.Now}
}

// Generate reconciles one teacher-period into a bill. The whole sequence runs
// in a single transaction under the period's mutex, so concurrent calls for
// the same (teacher, month, year) cannot interleave the check-then-write.
func (br *billRepository) Generate(ctx context.Context, teacherID, month, year int, generatedBy int) (*domain.Bill, error) {
	key := billPeriodKey(teacherID, month, year)
	billLocks.Lock(key)
	defer billLocks.Unlock(key)

	tx := br.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var config domain.BillingConfiguration
	if err := tx.First(&config).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrConfigMissing
		}
		return nil, fmt.Errorf("could not load billing configuration: %w", err)
	}

	var teacher domain.Teacher
	if err := tx.Where("teacher_id = ? AND is_active = ?", teacherID, true).First(&teacher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("teacher not found or inactive: %w", domain.ErrNotFound)
		}
		return nil, err
	}

	var existing domain.Bill
	existingFound := true
	err := tx.Where("teacher_id = ? AND month = ? AND year = ?", teacherID, month, year).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("could not look up existing bill: %w", err)
		}
		existingFound = false
	}
	if existingFound && existing.IsPaid {
		return nil, fmt.Errorf("bill for %d/%d already settled: %w", month, year, domain.ErrAlreadyPaid)
	}

	start, next := monthRange(month, year)
	var attendances []domain.Attendance
	if err := tx.Where("teacher_id = ? AND date >= ? AND date < ?", teacherID, start, next).
		Find(&attendances).Error; err != nil {
		return nil, fmt.Errorf("could not load attendance for period: %w", err)
	}

	var breakfastCount, lunchCount, dinnerCount int
	for _, a := range attendances {
		if a.BreakfastTaken {
			breakfastCount++
		}
		if a.LunchTaken {
			lunchCount++
		}
		if a.DinnerTaken {
			dinnerCount++
		}
	}
	totalMeals := breakfastCount + lunchCount + dinnerCount

	foodBill := config.BreakfastRate.Mul(decimal.NewFromInt(int64(breakfastCount))).
		Add(config.LunchRate.Mul(decimal.NewFromInt(int64(lunchCount)))).
		Add(config.DinnerRate.Mul(decimal.NewFromInt(int64(dinnerCount))))

	var activeCount int64
	if err := tx.Model(&domain.Teacher{}).Where("is_active = ?", true).Count(&activeCount).Error; err != nil {
		return nil, fmt.Errorf("could not count active teachers: %w", err)
	}
	waterShare := decimal.Zero
	if activeCount > 0 {
		waterShare = config.MonthlyWaterBillTotal.DivRound(decimal.NewFromInt(activeCount), 2)
	}

	var bill *domain.Bill
	if existingFound {
		// Regenerating an unpaid bill overwrites it in place; identity and the
		// carried balance survive.
		existing.FoodBill = foodBill
		existing.WaterBill = waterShare
		existing.TotalMealsConsumed = totalMeals
		existing.TotalBill = foodBill.Add(waterShare).Add(existing.UnpaidBalance)
		existing.GeneratedDate = br.now()
		existing.GeneratedBy = &generatedBy
		if err := tx.Save(&existing).Error; err != nil {
			return nil, fmt.Errorf("could not update bill: %w", err)
		}
		bill = &existing
	} else {
		carry := decimal.Zero
		var previousUnpaid domain.Bill
		err := tx.Where("teacher_id = ? AND is_paid = ?", teacherID, false).
			Order("year DESC").Order("month DESC").
			First(&previousUnpaid).Error
		if err == nil {
			carry = previousUnpaid.UnpaidBalance
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("could not look up carried balance: %w", err)
		}

		newBill := domain.Bill{
			TeacherID:          teacherID,
			Month:              month,
			Year:               year,
			FoodBill:           foodBill,
			WaterBill:          waterShare,
			TotalBill:          foodBill.Add(waterShare).Add(carry),
			TotalMealsConsumed: totalMeals,
			UnpaidBalance:      carry,
			IsPaid:             false,
			GeneratedDate:      br.now(),
			GeneratedBy:        &generatedBy,
		}
		if err := tx.Create(&newBill).Error; err != nil {
			return nil, fmt.Errorf("could not create bill: %w", err)
		}
		bill = &newBill
	}

	// Attendance is consumed by the bill; purging prevents double-billing.
	if err := tx.Where("teacher_id = ? AND date >= ? AND date < ?", teacherID, start, next).
		Delete(&domain.Attendance{}).Error; err != nil {
		return nil, fmt.Errorf("could not clear billed attendance: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("could not commit bill generation: %w", err)
	}
	return bill, nil
}

func (br *billRepository) GetBill(ctx context.Context, billID int) (*domain.Bill, error) {
	var bill domain.Bill
	err := br.db.WithContext(ctx).Preload("Teacher").Where("bill_id = ?", billID).First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

func (br *billRepository) GetBillForTeacher(ctx context.Context, billID, teacherID int) (*domain.Bill, error) {
	var bill domain.Bill
	err := br.db.WithContext(ctx).Where("bill_id = ? AND teacher_id = ?", billID, teacherID).First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

func (br *billRepository) GetBillForPeriod(ctx context.Context, teacherID, month, year int) (*domain.Bill, error) {
	var bill domain.Bill
	err := br.db.WithContext(ctx).
		Where("teacher_id = ? AND month = ? AND year = ?", teacherID, month, year).
		First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

func (br *billRepository) ListBills(ctx context.Context, limit int) (*[]domain.Bill, error) {
	var bills []domain.Bill
	q := br.db.WithContext(ctx).Preload("Teacher").
		Order("year DESC").Order("month DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&bills).Error; err != nil {
		return nil, fmt.Errorf("could not get bills: %w", err)
	}
	return &bills, nil
}

func (br *billRepository) ListBillsByTeacher(ctx context.Context, teacherID int) (*[]domain.Bill, error) {
	var bills []domain.Bill
	err := br.db.WithContext(ctx).Where("teacher_id = ?", teacherID).
		Order("year DESC").Order("month DESC").
		Find(&bills).Error
	if err != nil {
		return nil, fmt.Errorf("could not get bills for teacher %d: %w", teacherID, err)
	}
	return &bills, nil
}

func (br *billRepository) MarkPaid(ctx context.Context, billID int) (*domain.Bill, error) {
	return br.settle(ctx, billID, 0, nil, nil)
}

func (br *billRepository) SettlePayment(ctx context.Context, billID, teacherID int, transactionID, method string) (*domain.Bill, error) {
	return br.settle(ctx, billID, teacherID, &transactionID, &method)
}

// settle flips a bill to paid, zeroes the carried balance whatever its sign,
// records payment metadata when present, and purges the billed period's
// attendance, all in one transaction. The bill is read twice: once unguarded
// to learn which period to lock, then again under the period mutex so the
// paid-state check cannot race another settle or a Generate.
func (br *billRepository) settle(ctx context.Context, billID, teacherID int, transactionID, method *string) (*domain.Bill, error) {
	located, err := br.locateBill(ctx, billID, teacherID)
	if err != nil {
		return nil, err
	}

	key := billPeriodKey(located.TeacherID, located.Month, located.Year)
	billLocks.Lock(key)
	defer billLocks.Unlock(key)

	tx := br.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var bill domain.Bill
	q := tx.Where("bill_id = ?", billID)
	if teacherID > 0 {
		q = q.Where("teacher_id = ?", teacherID)
	}
	if err := q.First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if bill.IsPaid {
		return nil, domain.ErrAlreadyPaid
	}

	now := br.now()
	bill.IsPaid = true
	bill.PaidDate = &now
	bill.UnpaidBalance = decimal.Zero
	if transactionID != nil {
		bill.TransactionID = transactionID
	}
	if method != nil {
		bill.PaymentMethod = method
	}
	if err := tx.Save(&bill).Error; err != nil {
		return nil, fmt.Errorf("could not mark bill paid: %w", err)
	}

	start, next := monthRange(bill.Month, bill.Year)
	if err := tx.Where("teacher_id = ? AND date >= ? AND date < ?", bill.TeacherID, start, next).
		Delete(&domain.Attendance{}).Error; err != nil {
		return nil, fmt.Errorf("could not clear billed attendance: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("could not commit payment: %w", err)
	}
	return &bill, nil
}

// locateBill reads a bill outside any lock, only to learn which period mutex
// to take. Callers must re-read under the lock before acting on its state.
func (br *billRepository) locateBill(ctx context.Context, billID, teacherID int) (*domain.Bill, error) {
	var bill domain.Bill
	q := br.db.WithContext(ctx).Where("bill_id = ?", billID)
	if teacherID > 0 {
		q = q.Where("teacher_id = ?", teacherID)
	}
	if err := q.First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

func (br *billRepository) StampPaymentToken(ctx context.Context, billID, teacherID int, token string) (*domain.Bill, error) {
	located, err := br.locateBill(ctx, billID, teacherID)
	if err != nil {
		return nil, err
	}

	key := billPeriodKey(located.TeacherID, located.Month, located.Year)
	billLocks.Lock(key)
	defer billLocks.Unlock(key)

	tx := br.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var bill domain.Bill
	err = tx.Where("bill_id = ? AND teacher_id = ?", billID, teacherID).First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if bill.IsPaid {
		return nil, domain.ErrAlreadyPaid
	}

	bill.PaymentToken = &token
	if err := tx.Save(&bill).Error; err != nil {
		return nil, fmt.Errorf("could not stamp payment token: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("could not commit payment token: %w", err)
	}
	return &bill, nil
}

func (br *billRepository) DeleteBill(ctx context.Context, billID int) error {
	var bill domain.Bill
	err := br.db.WithContext(ctx).Where("bill_id = ?", billID).First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	// Unpaid bills carry live balances; only settled bills may be removed.
	if !bill.IsPaid {
		return fmt.Errorf("only paid bills can be deleted")
	}

	if err := br.db.WithContext(ctx).Delete(&bill).Error; err != nil {
		return fmt.Errorf("could not delete bill: %w", err)
	}
	return nil
}
