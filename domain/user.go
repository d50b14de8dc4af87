package domain

import (
	"context"
	"time"
)

type User struct {
	UserID             int        `gorm:"primaryKey;autoIncrement" json:"user_id"`
	Username           string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username" valid:"required~Username is required"`
	Password           string     `gorm:"type:varchar(255);not null" json:"-" valid:"required~Password is required"`
	Role               string     `gorm:"type:role_enum;not null" json:"role" valid:"required~Role is required,in(admin|teacher)~Invalid role"`
	MustChangePassword bool       `gorm:"default:true" json:"must_change_password"`
	IsActive           bool       `gorm:"default:true" json:"is_active"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

type UserRepo interface {
	FindUserByUsername(ctx context.Context, username string) (*User, error)
	FindUserByID(ctx context.Context, userID int) (*User, error)
	ChangePassword(ctx context.Context, userID int, newPasswordHash string) error
	FindAdminUserID(ctx context.Context) (int, error)
}
