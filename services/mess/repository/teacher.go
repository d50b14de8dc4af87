package repository

import (
	"context"
	"errors"
	"fmt"
	"messadmin/domain"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type teacherRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTeacherRepository(database *gorm.DB) domain.TeacherRepo {
	return &teacherRepository{db: database, now: time.Now}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// CreateTeacher creates the teacher profile together with its login account.
// The new account starts with MustChangePassword set.
func (tr *teacherRepository) CreateTeacher(ctx context.Context, req *domain.CreateTeacherRequest) (*domain.Teacher, error) {
	tx := tr.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var count int64
	err := tx.Model(&domain.User{}).
		Where("LOWER(username) = ? AND deleted_at IS NULL", strings.ToLower(req.Username)).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("could not check username: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("username '%s' is already taken", req.Username)
	}

	err = tx.Model(&domain.Teacher{}).
		Where("LOWER(email) = ?", strings.ToLower(req.Email)).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("could not check email: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("email '%s' is already registered", req.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	user := domain.User{
		Username:           req.Username,
		Password:           string(hashed),
		Role:               domain.RoleTeacher,
		MustChangePassword: true,
		IsActive:           true,
	}
	if err := tx.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("username '%s' is already taken", req.Username)
		}
		return nil, fmt.Errorf("could not create user account: %w", err)
	}

	teacher := domain.Teacher{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Department:  req.Department,
		JoiningDate: tr.now(),
		IsActive:    true,
		UserID:      &user.UserID,
	}
	if err := tx.Create(&teacher).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("email '%s' is already registered", req.Email)
		}
		return nil, fmt.Errorf("could not create teacher: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("could not commit teacher creation: %w", err)
	}

	teacher.User = &user
	return &teacher, nil
}

func (tr *teacherRepository) GetAllTeachers(ctx context.Context) (*[]domain.Teacher, error) {
	var teachers []domain.Teacher
	err := tr.db.WithContext(ctx).Preload("User").
		Order("full_name ASC").
		Find(&teachers).Error
	if err != nil {
		return nil, fmt.Errorf("could not get teachers: %w", err)
	}
	return &teachers, nil
}

func (tr *teacherRepository) GetActiveTeachers(ctx context.Context) (*[]domain.Teacher, error) {
	var teachers []domain.Teacher
	err := tr.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("teacher_id ASC").
		Find(&teachers).Error
	if err != nil {
		return nil, fmt.Errorf("could not get active teachers: %w", err)
	}
	return &teachers, nil
}

func (tr *teacherRepository) GetTeacherByID(ctx context.Context, teacherID int) (*domain.Teacher, error) {
	var teacher domain.Teacher
	err := tr.db.WithContext(ctx).Preload("User").
		Where("teacher_id = ?", teacherID).
		First(&teacher).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &teacher, nil
}

func (tr *teacherRepository) GetTeacherByUserID(ctx context.Context, userID int) (*domain.Teacher, error) {
	var teacher domain.Teacher
	err := tr.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&teacher).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &teacher, nil
}

// GetTeacherDetail loads the teacher with their last 30 attendance records
// and last 6 bills for the admin detail view.
func (tr *teacherRepository) GetTeacherDetail(ctx context.Context, teacherID int) (*domain.TeacherDetail, error) {
	teacher, err := tr.GetTeacherByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	var attendances []domain.Attendance
	err = tr.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("date DESC").Limit(30).
		Find(&attendances).Error
	if err != nil {
		return nil, fmt.Errorf("could not get recent attendance: %w", err)
	}

	var bills []domain.Bill
	err = tr.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("year DESC").Order("month DESC").Limit(6).
		Find(&bills).Error
	if err != nil {
		return nil, fmt.Errorf("could not get recent bills: %w", err)
	}

	return &domain.TeacherDetail{
		Teacher:     *teacher,
		Attendances: attendances,
		Bills:       bills,
	}, nil
}

func (tr *teacherRepository) UpdateTeacher(ctx context.Context, teacherID int, req *domain.UpdateTeacherRequest) error {
	var teacher domain.Teacher
	err := tr.db.WithContext(ctx).Where("teacher_id = ?", teacherID).First(&teacher).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	var count int64
	err = tr.db.WithContext(ctx).Model(&domain.Teacher{}).
		Where("LOWER(email) = ? AND teacher_id <> ?", strings.ToLower(req.Email), teacherID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("could not check email: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("email '%s' is already registered", req.Email)
	}

	teacher.FullName = req.FullName
	teacher.Email = req.Email
	teacher.PhoneNumber = req.PhoneNumber
	teacher.Department = req.Department

	if err := tr.db.WithContext(ctx).Save(&teacher).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email '%s' is already registered", req.Email)
		}
		return fmt.Errorf("could not update teacher: %w", err)
	}
	return nil
}

// DeleteTeacher removes the teacher and everything hanging off them:
// attendance, bills, disputes, and the login account, in one transaction.
func (tr *teacherRepository) DeleteTeacher(ctx context.Context, teacherID int) error {
	tx := tr.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("could not begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var teacher domain.Teacher
	if err := tx.Where("teacher_id = ?", teacherID).First(&teacher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if err := tx.Where("teacher_id = ?", teacherID).
		Delete(&domain.AttendanceDispute{}).Error; err != nil {
		return fmt.Errorf("could not delete teacher disputes: %w", err)
	}
	if err := tx.Where("teacher_id = ?", teacherID).
		Delete(&domain.Attendance{}).Error; err != nil {
		return fmt.Errorf("could not delete teacher attendance: %w", err)
	}
	if err := tx.Where("teacher_id = ?", teacherID).
		Delete(&domain.Bill{}).Error; err != nil {
		return fmt.Errorf("could not delete teacher bills: %w", err)
	}
	if err := tx.Delete(&teacher).Error; err != nil {
		return fmt.Errorf("could not delete teacher: %w", err)
	}

	if teacher.UserID != nil {
		now := tr.now()
		err := tx.Model(&domain.User{}).
			Where("user_id = ?", *teacher.UserID).
			Updates(map[string]interface{}{
				"is_active":  false,
				"deleted_at": &now,
			}).Error
		if err != nil {
			return fmt.Errorf("could not deactivate user account: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("could not commit teacher deletion: %w", err)
	}
	return nil
}

func (tr *teacherRepository) CountActiveTeachers(ctx context.Context) (int64, error) {
	var count int64
	err := tr.db.WithContext(ctx).Model(&domain.Teacher{}).
		Where("is_active = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("could not count active teachers: %w", err)
	}
	return count, nil
}
