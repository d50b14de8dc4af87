package repository

import (
	"context"
	"errors"
	"fmt"
	"messadmin/domain"
	"time"

	"gorm.io/gorm"
)

type billingConfigRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewBillingConfigRepository(database *gorm.DB) domain.BillingConfigRepo {
	return &billingConfigRepository{db: database, now: time.Now}
}

func (cr *billingConfigRepository) GetConfiguration(ctx context.Context) (*domain.BillingConfiguration, error) {
	var config domain.BillingConfiguration
	err := cr.db.WithContext(ctx).First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrConfigMissing
		}
		return nil, fmt.Errorf("could not load billing configuration: %w", err)
	}
	return &config, nil
}

// UpdateConfiguration replaces the single rate-card row, creating it on first
// use. Changes only affect bills generated afterwards.
func (cr *billingConfigRepository) UpdateConfiguration(ctx context.Context, req *domain.UpdateBillingConfigRequest, updatedBy int) (*domain.BillingConfiguration, error) {
	var config domain.BillingConfiguration
	err := cr.db.WithContext(ctx).First(&config).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("could not load billing configuration: %w", err)
	}

	config.MonthlyWaterBillTotal = req.MonthlyWaterBillTotal
	config.BreakfastRate = req.BreakfastRate
	config.LunchRate = req.LunchRate
	config.DinnerRate = req.DinnerRate
	config.LastUpdated = cr.now()
	config.UpdatedBy = &updatedBy

	if err := cr.db.WithContext(ctx).Save(&config).Error; err != nil {
		return nil, fmt.Errorf("could not save billing configuration: %w", err)
	}
	return &config, nil
}
