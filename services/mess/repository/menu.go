package repository

import (
	"context"
	"errors"
	"fmt"
	"messadmin/domain"

	"gorm.io/gorm"
)

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(database *gorm.DB) domain.MenuRepo {
	return &menuRepository{db: database}
}

func (mr *menuRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	item.IsActive = true
	if err := mr.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("could not create menu item: %w", err)
	}
	return nil
}

func (mr *menuRepository) UpdateMenuItem(ctx context.Context, id int, item *domain.MenuItem) error {
	var existing domain.MenuItem
	err := mr.db.WithContext(ctx).Where("menu_item_id = ?", id).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	existing.ItemName = item.ItemName
	existing.Description = item.Description
	existing.MealType = item.MealType
	existing.DayOfWeek = item.DayOfWeek
	existing.RatePerServing = item.RatePerServing

	if err := mr.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return fmt.Errorf("could not update menu item: %w", err)
	}
	*item = existing
	return nil
}

func (mr *menuRepository) DeactivateMenuItem(ctx context.Context, id int) error {
	result := mr.db.WithContext(ctx).Model(&domain.MenuItem{}).
		Where("menu_item_id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("could not deactivate menu item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (mr *menuRepository) ListMenu(ctx context.Context, dayOfWeek, mealType string) (*[]domain.MenuItem, error) {
	var items []domain.MenuItem
	q := mr.db.WithContext(ctx).Where("is_active = ?", true)
	if dayOfWeek != "" {
		q = q.Where("day_of_week = ?", dayOfWeek)
	}
	if mealType != "" {
		q = q.Where("meal_type = ?", mealType)
	}
	err := q.Order("day_of_week ASC").Order("meal_type ASC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("could not get menu: %w", err)
	}
	return &items, nil
}

func (mr *menuRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := mr.db.WithContext(ctx).
		Where("menu_item_id = ? AND is_active = ?", id, true).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}
