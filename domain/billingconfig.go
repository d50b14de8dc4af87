package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BillingConfiguration is a single-row table: the live rate card shared by
// every billing calculation. There is no history, updates replace it.
type BillingConfiguration struct {
	ConfigID              int             `gorm:"primaryKey;autoIncrement" json:"config_id"`
	MonthlyWaterBillTotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monthly_water_bill_total"`
	BreakfastRate         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"breakfast_rate"`
	LunchRate             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"lunch_rate"`
	DinnerRate            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"dinner_rate"`
	LastUpdated           time.Time       `json:"last_updated"`
	UpdatedBy             *int            `json:"updated_by,omitempty"`
}

// Rates returns the per-meal rate card.
func (c *BillingConfiguration) Rates() MealRates {
	return MealRates{Breakfast: c.BreakfastRate, Lunch: c.LunchRate, Dinner: c.DinnerRate}
}

type UpdateBillingConfigRequest struct {
	MonthlyWaterBillTotal decimal.Decimal `json:"monthly_water_bill_total"`
	BreakfastRate         decimal.Decimal `json:"breakfast_rate"`
	LunchRate             decimal.Decimal `json:"lunch_rate"`
	DinnerRate            decimal.Decimal `json:"dinner_rate"`
}

type BillingConfigRepo interface {
	// GetConfiguration fails with ErrConfigMissing when no row exists.
	GetConfiguration(ctx context.Context) (*BillingConfiguration, error)
	UpdateConfiguration(ctx context.Context, req *UpdateBillingConfigRequest, updatedBy int) (*BillingConfiguration, error)
}

type BillingConfigUseCase interface {
	GetConfiguration(ctx context.Context) (*BillingConfiguration, error)
	UpdateConfiguration(ctx context.Context, req *UpdateBillingConfigRequest, updatedBy int) (*BillingConfiguration, error)
}
