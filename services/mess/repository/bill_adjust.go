package repository

import (
	"errors"
	"fmt"
	"messadmin/domain"
	"time"

	"gorm.io/gorm"
)

// applyBillAdjustment reconciles the bill covering the attendance day after a
// flag change. newFlags all false models a deletion. Runs inside the caller's
// transaction so the attendance change and the bill change commit together.
//
// No bill for the period means the attendance was never billed: nothing to
// adjust. Paid bills keep their settled TotalBill; the correction rides the
// signed UnpaidBalance into the next period's carry-forward instead.
func applyBillAdjustment(tx *gorm.DB, teacherID int, date time.Time, oldFlags, newFlags domain.MealFlags) error {
	var bill domain.Bill
	err := tx.Where("teacher_id = ? AND month = ? AND year = ?",
		teacherID, int(date.Month()), date.Year()).First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("could not look up bill for adjustment: %w", err)
	}

	var config domain.BillingConfiguration
	err = tx.First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("could not load billing configuration: %w", err)
	}

	rates := config.Rates()
	delta := rates.Delta(oldFlags, newFlags)
	mealDelta := domain.MealCountDelta(oldFlags, newFlags)
	if delta.IsZero() && mealDelta == 0 {
		return nil
	}

	bill.FoodBill = bill.FoodBill.Add(delta)
	bill.TotalMealsConsumed += mealDelta

	if bill.IsPaid {
		if !newFlags.Any() {
			// Pure reduction against a settled bill: the credit replaces the
			// balance outright (last-write-wins, matching the legacy system).
			bill.UnpaidBalance = delta
		} else {
			bill.UnpaidBalance = bill.UnpaidBalance.Add(delta)
		}
	} else {
		bill.TotalBill = bill.TotalBill.Add(delta)
		bill.UnpaidBalance = bill.UnpaidBalance.Add(delta)
	}

	if err := tx.Save(&bill).Error; err != nil {
		return fmt.Errorf("could not adjust bill: %w", err)
	}

	return nil
}
