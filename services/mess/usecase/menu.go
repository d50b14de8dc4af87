package usecase

import (
	"context"
	"messadmin/domain"
	"time"

	"github.com/asaskevich/govalidator"
)

type menuUseCase struct {
	repo    domain.MenuRepo
	TimeOut time.Duration
	now     func() time.Time
}

func NewMenuUseCase(repo domain.MenuRepo, timeOut time.Duration) domain.MenuUseCase {
	return &menuUseCase{
		repo:    repo,
		TimeOut: timeOut,
		now:     time.Now,
	}
}

func (mu *menuUseCase) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, mu.TimeOut)
	defer cancel()

	if _, err := govalidator.ValidateStruct(item); err != nil {
		return err
	}
	return mu.repo.CreateMenuItem(ctx, item)
}

func (mu *menuUseCase) UpdateMenuItem(ctx context.Context, id int, item *domain.MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, mu.TimeOut)
	defer cancel()

	if _, err := govalidator.ValidateStruct(item); err != nil {
		return err
	}
	return mu.repo.UpdateMenuItem(ctx, id, item)
}

func (mu *menuUseCase) DeleteMenuItem(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, mu.TimeOut)
	defer cancel()

	return mu.repo.DeactivateMenuItem(ctx, id)
}

func (mu *menuUseCase) GetMenu(ctx context.Context, dayOfWeek, mealType string) (*[]domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, mu.TimeOut)
	defer cancel()

	return mu.repo.ListMenu(ctx, dayOfWeek, mealType)
}

func (mu *menuUseCase) GetTodayMenu(ctx context.Context) (string, *[]domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, mu.TimeOut)
	defer cancel()

	day := mu.now().Weekday().String()
	items, err := mu.repo.ListMenu(ctx, day, "")
	if err != nil {
		return "", nil, err
	}
	return day, items, nil
}

func (mu *menuUseCase) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, mu.TimeOut)
	defer cancel()

	return mu.repo.GetMenuItem(ctx, id)
}
