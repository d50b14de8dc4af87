package usecase

import (
	"context"
	"fmt"
	"messadmin/domain"
	"time"

	"github.com/shopspring/decimal"
)

type billingConfigUseCase struct {
	repo    domain.BillingConfigRepo
	TimeOut time.Duration
}

func NewBillingConfigUseCase(repo domain.BillingConfigRepo, timeOut time.Duration) domain.BillingConfigUseCase {
	return &billingConfigUseCase{
		repo:    repo,
		TimeOut: timeOut,
	}
}

func (cu *billingConfigUseCase) GetConfiguration(ctx context.Context) (*domain.BillingConfiguration, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	return cu.repo.GetConfiguration(ctx)
}

func (cu *billingConfigUseCase) UpdateConfiguration(ctx context.Context, req *domain.UpdateBillingConfigRequest, updatedBy int) (*domain.BillingConfiguration, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	for name, v := range map[string]decimal.Decimal{
		"monthly water bill total": req.MonthlyWaterBillTotal,
		"breakfast rate":           req.BreakfastRate,
		"lunch rate":               req.LunchRate,
		"dinner rate":              req.DinnerRate,
	} {
		if v.IsNegative() {
			return nil, fmt.Errorf("%s cannot be negative", name)
		}
	}
	return cu.repo.UpdateConfiguration(ctx, req, updatedBy)
}
