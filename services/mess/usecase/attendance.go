package usecase

import (
	"context"
	"messadmin/domain"
	"time"

	"github.com/asaskevich/govalidator"
)

const autoMarkRemark = "Auto-marked by scheduler"

type attendanceUseCase struct {
	repo        domain.AttendanceRepo
	teacherRepo domain.TeacherRepo
	userRepo    domain.UserRepo
	TimeOut     time.Duration
	now         func() time.Time
}

func NewAttendanceUseCase(repo domain.AttendanceRepo, teacherRepo domain.TeacherRepo, userRepo domain.UserRepo, timeOut time.Duration) domain.AttendanceUseCase {
	return &attendanceUseCase{
		repo:        repo,
		teacherRepo: teacherRepo,
		userRepo:    userRepo,
		TimeOut:     timeOut,
		now:         time.Now,
	}
}

func (auc *attendanceUseCase) MarkAttendance(ctx context.Context, req *domain.MarkAttendanceRequest, recordedBy int) (*domain.Attendance, error) {
	ctx, cancel := context.WithTimeout(ctx, auc.TimeOut)
	defer cancel()

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return nil, err
	}
	return auc.repo.RecordMeals(ctx, req, recordedBy)
}

func (auc *attendanceUseCase) EditAttendance(ctx context.Context, attendanceID int, req *domain.UpdateAttendanceRequest, recordedBy int) error {
	ctx, cancel := context.WithTimeout(ctx, auc.TimeOut)
	defer cancel()

	_, _, err := auc.repo.EditMeals(ctx, attendanceID, req, recordedBy)
	return err
}

func (auc *attendanceUseCase) DeleteAttendance(ctx context.Context, attendanceID int) error {
	ctx, cancel := context.WithTimeout(ctx, auc.TimeOut)
	defer cancel()

	_, err := auc.repo.DeleteRecord(ctx, attendanceID, 0)
	return err
}

// DeleteOwnAttendance restricts deletion to the calling teacher's records.
func (auc *attendanceUseCase) DeleteOwnAttendance(ctx context.Context, attendanceID, userID int) error {
	ctx, cancel := context.WithTimeout(ctx, auc.TimeOut)
	defer cancel()

	teacher, err := auc.teacherRepo.GetTeacherByUserID(ctx, userID)
	if err != nil {
		return err
	}
	_, err = auc.repo.DeleteRecord(ctx, attendanceID, teacher.TeacherID)
	return err
}

func (auc *attendanceUseCase) GetAttendanceByDate(ctx context.Context, date time.Time) (*[]domain.Attendance, error) {
	ctx, cancel := context.WithTimeout(ctx, auc.TimeOut)
	defer cancel()

	return auc.repo.ListByDate(ctx, date)
}

func (auc *attendanceUseCase) GetMyAttendance(ctx context.Context, userID int, from, to time.Time) (*[]domain.Attendance, error) {
	ctx, cancel := context.WithTimeout(ctx, auc.TimeOut)
	defer cancel()

	teacher, err := auc.teacherRepo.GetTeacherByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if to.IsZero() {
		to = auc.now()
	}
	if from.IsZero() {
		from = to.AddDate(0, -1, 0)
	}
	return auc.repo.ListRange(ctx, teacher.TeacherID, from, to)
}

func (auc *attendanceUseCase) GetMonthlyReport(ctx context.Context, month, year int) (*domain.MonthlyAttendanceReport, error) {
	ctx, cancel := context.WithTimeout(ctx, auc.TimeOut)
	defer cancel()

	return auc.repo.MonthlyReport(ctx, month, year)
}

// AutoMarkToday records all three meals for every active teacher, attributed
// to the admin account. It is a no-op when any attendance already exists for
// today, so a manually marked day is never overwritten. Returns how many
// teachers were marked.
func (auc *attendanceUseCase) AutoMarkToday(ctx context.Context) (int, error) {
	today := auc.now()

	marked, err := auc.repo.AnyOnDate(ctx, today)
	if err != nil {
		return 0, err
	}
	if marked {
		return 0, nil
	}

	adminID, err := auc.userRepo.FindAdminUserID(ctx)
	if err != nil {
		return 0, err
	}
	teachers, err := auc.teacherRepo.GetActiveTeachers(ctx)
	if err != nil {
		return 0, err
	}

	remark := autoMarkRemark
	count := 0
	for _, t := range *teachers {
		req := &domain.MarkAttendanceRequest{
			TeacherID: t.TeacherID,
			Date:      today,
			MealFlags: domain.MealFlags{Breakfast: true, Lunch: true, Dinner: true},
			Remarks:   &remark,
		}
		if _, err := auc.repo.RecordMeals(ctx, req, adminID); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
