package usecase

import (
	"context"
	"messadmin/domain"
	"time"

	"github.com/asaskevich/govalidator"
)

type teacherUseCase struct {
	repo    domain.TeacherRepo
	TimeOut time.Duration
}

func NewTeacherUseCase(repo domain.TeacherRepo, timeOut time.Duration) domain.TeacherUseCase {
	return &teacherUseCase{
		repo:    repo,
		TimeOut: timeOut,
	}
}

func (tu *teacherUseCase) CreateTeacher(ctx context.Context, req *domain.CreateTeacherRequest) (*domain.Teacher, error) {
	ctx, cancel := context.WithTimeout(ctx, tu.TimeOut)
	defer cancel()

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return nil, err
	}
	return tu.repo.CreateTeacher(ctx, req)
}

func (tu *teacherUseCase) GetAllTeachers(ctx context.Context) (*[]domain.Teacher, error) {
	ctx, cancel := context.WithTimeout(ctx, tu.TimeOut)
	defer cancel()

	return tu.repo.GetAllTeachers(ctx)
}

func (tu *teacherUseCase) GetTeacherDetail(ctx context.Context, teacherID int) (*domain.TeacherDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, tu.TimeOut)
	defer cancel()

	return tu.repo.GetTeacherDetail(ctx, teacherID)
}

func (tu *teacherUseCase) UpdateTeacher(ctx context.Context, teacherID int, req *domain.UpdateTeacherRequest) error {
	ctx, cancel := context.WithTimeout(ctx, tu.TimeOut)
	defer cancel()

	if _, err := govalidator.ValidateStruct(req); err != nil {
		return err
	}
	return tu.repo.UpdateTeacher(ctx, teacherID, req)
}

func (tu *teacherUseCase) DeleteTeacher(ctx context.Context, teacherID int) error {
	ctx, cancel := context.WithTimeout(ctx, tu.TimeOut)
	defer cancel()

	return tu.repo.DeleteTeacher(ctx, teacherID)
}
