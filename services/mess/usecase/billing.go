package usecase

import (
	"context"
	"errors"
	"fmt"
	"messadmin/domain"
	"time"

	"github.com/asaskevich/govalidator"
)

type billUseCase struct {
	repo           domain.BillRepo
	teacherRepo    domain.TeacherRepo
	attendanceRepo domain.AttendanceRepo
	TimeOut        time.Duration
}

func NewBillUseCase(repo domain.BillRepo, teacherRepo domain.TeacherRepo, attendanceRepo domain.AttendanceRepo, timeOut time.Duration) domain.BillUseCase {
	return &billUseCase{
		repo:           repo,
		teacherRepo:    teacherRepo,
		attendanceRepo: attendanceRepo,
		TimeOut:        timeOut,
	}
}

func (bu *billUseCase) GenerateBill(ctx context.Context, req *domain.GenerateBillRequest, generatedBy int) (*domain.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, bu.TimeOut)
	defer cancel()

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return nil, err
	}
	return bu.repo.Generate(ctx, req.TeacherID, req.Month, req.Year, generatedBy)
}

// GenerateMonthlyBills runs the period for every active teacher. One teacher
// failing does not stop the batch. Teachers who already have a bill for the
// period are skipped whatever its paid state: generation purges the billed
// attendance, so regenerating an existing bill against the emptied ledger
// would wipe its food charge.
func (bu *billUseCase) GenerateMonthlyBills(ctx context.Context, month, year int, generatedBy int) (int, []error) {
	teachers, err := bu.teacherRepo.GetActiveTeachers(ctx)
	if err != nil {
		return 0, []error{err}
	}

	var generated int
	var failed []error
	for _, t := range *teachers {
		_, err := bu.repo.GetBillForPeriod(ctx, t.TeacherID, month, year)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			failed = append(failed, fmt.Errorf("teacher %d (%s): %w", t.TeacherID, t.FullName, err))
			continue
		}

		if _, err := bu.repo.Generate(ctx, t.TeacherID, month, year, generatedBy); err != nil {
			// a settle racing the batch between the lookup and Generate is a
			// skip, not a failure
			if errors.Is(err, domain.ErrAlreadyPaid) {
				continue
			}
			failed = append(failed, fmt.Errorf("teacher %d (%s): %w", t.TeacherID, t.FullName, err))
			continue
		}
		generated++
	}
	return generated, failed
}

func (bu *billUseCase) GetBill(ctx context.Context, billID int) (*domain.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, bu.TimeOut)
	defer cancel()

	return bu.repo.GetBill(ctx, billID)
}

func (bu *billUseCase) GetBills(ctx context.Context, limit int) (*[]domain.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, bu.TimeOut)
	defer cancel()

	return bu.repo.ListBills(ctx, limit)
}

func (bu *billUseCase) GetMyBills(ctx context.Context, userID int) (*[]domain.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, bu.TimeOut)
	defer cancel()

	teacher, err := bu.teacherRepo.GetTeacherByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return bu.repo.ListBillsByTeacher(ctx, teacher.TeacherID)
}

// GetMyBillDetail returns the bill plus whatever attendance still exists for
// its period. Billed periods are purged, so the list is usually empty unless
// records were re-marked after generation.
func (bu *billUseCase) GetMyBillDetail(ctx context.Context, billID, userID int) (*domain.Bill, *[]domain.Attendance, error) {
	ctx, cancel := context.WithTimeout(ctx, bu.TimeOut)
	defer cancel()

	teacher, err := bu.teacherRepo.GetTeacherByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	bill, err := bu.repo.GetBillForTeacher(ctx, billID, teacher.TeacherID)
	if err != nil {
		return nil, nil, err
	}
	attendances, err := bu.attendanceRepo.ListPeriod(ctx, teacher.TeacherID, bill.Month, bill.Year)
	if err != nil {
		return nil, nil, err
	}
	return bill, attendances, nil
}

func (bu *billUseCase) MarkPaid(ctx context.Context, billID int) (*domain.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, bu.TimeOut)
	defer cancel()

	return bu.repo.MarkPaid(ctx, billID)
}

func (bu *billUseCase) DeleteBill(ctx context.Context, billID int) error {
	ctx, cancel := context.WithTimeout(ctx, bu.TimeOut)
	defer cancel()

	return bu.repo.DeleteBill(ctx, billID)
}
