package domain

import (
	"context"
	"time"
)

type Teacher struct {
	TeacherID   int       `gorm:"primaryKey;autoIncrement" json:"teacher_id"`
	FullName    string    `gorm:"type:varchar(100);not null" json:"full_name" valid:"required~Full name is required,stringlength(2|100)~Full name must be between 2 and 100 characters"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" valid:"required~Email address is required,email~Please enter a valid email address"`
	PhoneNumber string    `gorm:"type:varchar(20);not null" json:"phone_number" valid:"required~Phone number is required"`
	Department  string    `gorm:"type:varchar(100);not null" json:"department" valid:"required~Department is required"`
	JoiningDate time.Time `gorm:"autoCreateTime" json:"joining_date"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	UserID      *int      `json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"user,omitempty" valid:"-"`

	Attendances []Attendance `gorm:"foreignKey:TeacherID;references:TeacherID;constraint:OnDelete:CASCADE" json:"attendances,omitempty" valid:"-"`
	Bills       []Bill       `gorm:"foreignKey:TeacherID;references:TeacherID;constraint:OnDelete:CASCADE" json:"bills,omitempty" valid:"-"`
}

type CreateTeacherRequest struct {
	FullName    string `json:"full_name" valid:"required~Full name is required"`
	Email       string `json:"email" valid:"required~Email address is required,email~Please enter a valid email address"`
	PhoneNumber string `json:"phone_number" valid:"required~Phone number is required"`
	Department  string `json:"department" valid:"required~Department is required"`
	Username    string `json:"username" valid:"required~Username is required,stringlength(3|50)~Username must be between 3 and 50 characters"`
	Password    string `json:"password" valid:"required~Password is required,stringlength(6|72)~Password must be at least 6 characters"`
}

type UpdateTeacherRequest struct {
	FullName    string `json:"full_name" valid:"required~Full name is required"`
	Email       string `json:"email" valid:"required~Email address is required,email~Please enter a valid email address"`
	PhoneNumber string `json:"phone_number" valid:"required~Phone number is required"`
	Department  string `json:"department" valid:"required~Department is required"`
}

// TeacherDetail bundles a teacher with their recent activity for the admin
// detail page.
type TeacherDetail struct {
	Teacher     Teacher      `json:"teacher"`
	Attendances []Attendance `json:"recent_attendance"`
	Bills       []Bill       `json:"recent_bills"`
}

type TeacherRepo interface {
	CreateTeacher(ctx context.Context, req *CreateTeacherRequest) (*Teacher, error)
	GetAllTeachers(ctx context.Context) (*[]Teacher, error)
	GetActiveTeachers(ctx context.Context) (*[]Teacher, error)
	GetTeacherByID(ctx context.Context, teacherID int) (*Teacher, error)
	GetTeacherByUserID(ctx context.Context, userID int) (*Teacher, error)
	GetTeacherDetail(ctx context.Context, teacherID int) (*TeacherDetail, error)
	UpdateTeacher(ctx context.Context, teacherID int, req *UpdateTeacherRequest) error
	DeleteTeacher(ctx context.Context, teacherID int) error
	CountActiveTeachers(ctx context.Context) (int64, error)
}

type TeacherUseCase interface {
	CreateTeacher(ctx context.Context, req *CreateTeacherRequest) (*Teacher, error)
	GetAllTeachers(ctx context.Context) (*[]Teacher, error)
	GetTeacherDetail(ctx context.Context, teacherID int) (*TeacherDetail, error)
	UpdateTeacher(ctx context.Context, teacherID int, req *UpdateTeacherRequest) error
	DeleteTeacher(ctx context.Context, teacherID int) error
}
