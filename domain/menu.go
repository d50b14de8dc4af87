package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	MenuItemID     int             `gorm:"primaryKey;autoIncrement" json:"menu_item_id"`
	ItemName       string          `gorm:"type:varchar(100);not null" json:"item_name" valid:"required~Item name is required"`
	Description    *string         `gorm:"type:varchar(500)" json:"description,omitempty"`
	MealType       string          `gorm:"type:varchar(20);not null" json:"meal_type" valid:"required~Meal type is required,in(Breakfast|Lunch|Dinner)~Invalid meal type"`
	DayOfWeek      string          `gorm:"type:varchar(10);not null" json:"day_of_week" valid:"required~Day of week is required,in(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)~Invalid day of week"`
	RatePerServing decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"rate_per_serving"`
	IsActive       bool            `gorm:"default:true" json:"is_active"`
	CreatedDate    time.Time       `gorm:"autoCreateTime" json:"created_date"`
}

type MenuRepo interface {
	CreateMenuItem(ctx context.Context, item *MenuItem) error
	UpdateMenuItem(ctx context.Context, id int, item *MenuItem) error
	// DeactivateMenuItem is the delete path; menu rows are never hard-deleted.
	DeactivateMenuItem(ctx context.Context, id int) error
	ListMenu(ctx context.Context, dayOfWeek, mealType string) (*[]MenuItem, error)
	GetMenuItem(ctx context.Context, id int) (*MenuItem, error)
}

type MenuUseCase interface {
	CreateMenuItem(ctx context.Context, item *MenuItem) error
	UpdateMenuItem(ctx context.Context, id int, item *MenuItem) error
	DeleteMenuItem(ctx context.Context, id int) error
	GetMenu(ctx context.Context, dayOfWeek, mealType string) (*[]MenuItem, error)
	GetTodayMenu(ctx context.Context) (string, *[]MenuItem, error)
	GetMenuItem(ctx context.Context, id int) (*MenuItem, error)
}
