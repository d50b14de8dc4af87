package repository

import (
	"context"
	"errors"
	"fmt"
	"messadmin/domain"
	"strings"
	"time"

	"gorm.io/gorm"
)

type disputeRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDisputeRepository(database *gorm.DB) domain.DisputeRepo {
	return &disputeRepository{db: database, now: time.Now}
}

func (dr *disputeRepository) FileDispute(ctx context.Context, attendanceID, teacherID int, reason string) (*domain.AttendanceDispute, error) {
	tx := dr.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var attendance domain.Attendance
	err := tx.Where("attendance_id = ? AND teacher_id = ?", attendanceID, teacherID).
		First(&attendance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("attendance record not found for this teacher: %w", domain.ErrNotFound)
		}
		return nil, err
	}

	// One open dispute per attendance record; a rejected dispute can be refiled.
	var pending int64
	err = tx.Model(&domain.AttendanceDispute{}).
		Where("attendance_id = ? AND status = ?", attendanceID, domain.DisputePending).
		Count(&pending).Error
	if err != nil {
		return nil, fmt.Errorf("could not check pending disputes: %w", err)
	}
	if pending > 0 {
		return nil, domain.ErrDuplicatePending
	}

	dispute := domain.AttendanceDispute{
		AttendanceID: attendanceID,
		TeacherID:    teacherID,
		Reason:       reason,
		Status:       domain.DisputePending,
		ReportedDate: dr.now(),
	}
	if err := tx.Create(&dispute).Error; err != nil {
		return nil, fmt.Errorf("could not file dispute: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("could not commit dispute: %w", err)
	}
	return &dispute, nil
}

// Resolve applies the terminal decision. Approval means the disputed record
// was wrong: it is removed and the period's bill is corrected in the same
// transaction.
func (dr *disputeRepository) Resolve(ctx context.Context, disputeID int, decision string, notes *string, resolvedBy int) (*domain.AttendanceDispute, error) {
	tx := dr.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var dispute domain.AttendanceDispute
	if err := tx.Where("dispute_id = ?", disputeID).First(&dispute).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if dispute.Status != domain.DisputePending {
		return nil, domain.ErrAlreadyResolved
	}

	now := dr.now()
	dispute.ResolvedBy = &resolvedBy
	dispute.ResolvedDate = &now
	dispute.AdminNotes = notes

	if strings.EqualFold(decision, "Reject") {
		dispute.Status = domain.DisputeRejected
		if err := tx.Save(&dispute).Error; err != nil {
			return nil, fmt.Errorf("could not save dispute: %w", err)
		}
		if err := tx.Commit().Error; err != nil {
			return nil, fmt.Errorf("could not commit dispute resolution: %w", err)
		}
		return &dispute, nil
	}

	dispute.Status = domain.DisputeApproved
	if err := tx.Save(&dispute).Error; err != nil {
		return nil, fmt.Errorf("could not save dispute: %w", err)
	}

	var attendance domain.Attendance
	err := tx.Where("attendance_id = ?", dispute.AttendanceID).First(&attendance).Error
	if err != nil {
		// The record may already be gone if an admin deleted it while the
		// dispute sat open; the approval stands on its own then.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Commit().Error; err != nil {
				return nil, fmt.Errorf("could not commit dispute resolution: %w", err)
			}
			return &dispute, nil
		}
		return nil, err
	}

	key := billPeriodKey(attendance.TeacherID, int(attendance.Date.Month()), attendance.Date.Year())
	billLocks.Lock(key)
	defer billLocks.Unlock(key)

	if err := tx.Delete(&attendance).Error; err != nil {
		return nil, fmt.Errorf("could not delete disputed attendance: %w", err)
	}
	if err := applyBillAdjustment(tx, attendance.TeacherID, attendance.Date, attendance.Flags(), domain.MealFlags{}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("could not commit dispute resolution: %w", err)
	}
	return &dispute, nil
}

func (dr *disputeRepository) GetDispute(ctx context.Context, disputeID int) (*domain.AttendanceDispute, error) {
	var dispute domain.AttendanceDispute
	err := dr.db.WithContext(ctx).Preload("Teacher").Preload("Attendance").
		Where("dispute_id = ?", disputeID).
		First(&dispute).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &dispute, nil
}

func (dr *disputeRepository) ListByStatus(ctx context.Context, status string) (*[]domain.AttendanceDispute, error) {
	var disputes []domain.AttendanceDispute
	q := dr.db.WithContext(ctx).Preload("Teacher").Preload("Attendance").
		Order("reported_date DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&disputes).Error; err != nil {
		return nil, fmt.Errorf("could not get disputes: %w", err)
	}
	return &disputes, nil
}

func (dr *disputeRepository) ListByTeacher(ctx context.Context, teacherID int, status string) (*[]domain.AttendanceDispute, error) {
	var disputes []domain.AttendanceDispute
	q := dr.db.WithContext(ctx).Preload("Attendance").
		Where("teacher_id = ?", teacherID).
		Order("reported_date DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&disputes).Error; err != nil {
		return nil, fmt.Errorf("could not get disputes for teacher %d: %w", teacherID, err)
	}
	return &disputes, nil
}
