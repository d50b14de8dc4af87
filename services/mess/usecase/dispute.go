package usecase

import (
	"context"
	"messadmin/domain"
	"time"

	"github.com/asaskevich/govalidator"
)

type disputeUseCase struct {
	repo        domain.DisputeRepo
	teacherRepo domain.TeacherRepo
	TimeOut     time.Duration
}

func NewDisputeUseCase(repo domain.DisputeRepo, teacherRepo domain.TeacherRepo, timeOut time.Duration) domain.DisputeUseCase {
	return &disputeUseCase{
		repo:        repo,
		teacherRepo: teacherRepo,
		TimeOut:     timeOut,
	}
}

func (du *disputeUseCase) FileDispute(ctx context.Context, userID int, req *domain.FileDisputeRequest) (*domain.AttendanceDispute, error) {
	ctx, cancel := context.WithTimeout(ctx, du.TimeOut)
	defer cancel()

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return nil, err
	}
	teacher, err := du.teacherRepo.GetTeacherByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return du.repo.FileDispute(ctx, req.AttendanceID, teacher.TeacherID, req.Reason)
}

func (du *disputeUseCase) Resolve(ctx context.Context, disputeID int, req *domain.ResolveDisputeRequest, resolvedBy int) (*domain.AttendanceDispute, error) {
	ctx, cancel := context.WithTimeout(ctx, du.TimeOut)
	defer cancel()

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return nil, err
	}
	return du.repo.Resolve(ctx, disputeID, req.Decision, req.AdminNotes, resolvedBy)
}

func (du *disputeUseCase) GetDispute(ctx context.Context, disputeID int) (*domain.AttendanceDispute, error) {
	ctx, cancel := context.WithTimeout(ctx, du.TimeOut)
	defer cancel()

	return du.repo.GetDispute(ctx, disputeID)
}

func (du *disputeUseCase) ListByStatus(ctx context.Context, status string) (*[]domain.AttendanceDispute, error) {
	ctx, cancel := context.WithTimeout(ctx, du.TimeOut)
	defer cancel()

	return du.repo.ListByStatus(ctx, status)
}

func (du *disputeUseCase) ListMyDisputes(ctx context.Context, userID int, status string) (*[]domain.AttendanceDispute, error) {
	ctx, cancel := context.WithTimeout(ctx, du.TimeOut)
	defer cancel()

	teacher, err := du.teacherRepo.GetTeacherByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return du.repo.ListByTeacher(ctx, teacher.TeacherID, status)
}
