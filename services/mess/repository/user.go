package repository

import (
	"context"
	"errors"
	"fmt"
	"messadmin/domain"
	"strings"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(database *gorm.DB) domain.UserRepo {
	return &userRepository{db: database}
}

func (ur *userRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := ur.db.WithContext(ctx).
		Where("LOWER(username) = ? AND deleted_at IS NULL", strings.ToLower(username)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("could not find user: %w", err)
	}
	return &user, nil
}

func (ur *userRepository) FindUserByID(ctx context.Context, userID int) (*domain.User, error) {
	var user domain.User
	err := ur.db.WithContext(ctx).
		Where("user_id = ? AND deleted_at IS NULL", userID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("could not find user: %w", err)
	}
	return &user, nil
}

func (ur *userRepository) ChangePassword(ctx context.Context, userID int, newPasswordHash string) error {
	result := ur.db.WithContext(ctx).Model(&domain.User{}).
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Updates(map[string]interface{}{
			"password":             newPasswordHash,
			"must_change_password": false,
		})
	if result.Error != nil {
		return fmt.Errorf("could not change password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindAdminUserID returns the oldest active admin account, used to attribute
// scheduler-generated records.
func (ur *userRepository) FindAdminUserID(ctx context.Context) (int, error) {
	var user domain.User
	err := ur.db.WithContext(ctx).
		Where("role = ? AND is_active = ? AND deleted_at IS NULL", domain.RoleAdmin, true).
		Order("user_id ASC").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("could not find admin user: %w", err)
	}
	return user.UserID, nil
}
