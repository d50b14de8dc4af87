package domain

import (
	"context"
	"time"
)

const (
	DisputePending  = "Pending"
	DisputeApproved = "Approved"
	DisputeRejected = "Rejected"
)

type AttendanceDispute struct {
	DisputeID    int         `gorm:"primaryKey;autoIncrement" json:"dispute_id"`
	AttendanceID int         `gorm:"not null;index" json:"attendance_id"`
	Attendance   *Attendance `gorm:"foreignKey:AttendanceID;references:AttendanceID" json:"attendance,omitempty" valid:"-"`
	TeacherID    int         `gorm:"not null;index" json:"teacher_id"`
	Teacher      *Teacher    `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty" valid:"-"`
	Reason       string      `gorm:"type:varchar(500);not null" json:"reason" valid:"required~Reason is required"`
	Status       string      `gorm:"type:varchar(20);not null;index;default:Pending" json:"status"`
	ReportedDate time.Time   `json:"reported_date"`
	ResolvedBy   *int        `json:"resolved_by,omitempty"`
	ResolvedDate *time.Time  `json:"resolved_date,omitempty"`
	AdminNotes   *string     `gorm:"type:varchar(1000)" json:"admin_notes,omitempty"`
}

type FileDisputeRequest struct {
	AttendanceID int    `json:"attendance_id" valid:"required~Attendance record is required"`
	Reason       string `json:"reason" valid:"required~Reason is required,stringlength(1|500)~Reason must be at most 500 characters"`
}

type ResolveDisputeRequest struct {
	Decision   string  `json:"decision" valid:"required~Decision is required,in(Approve|Reject)~Decision must be Approve or Reject"`
	AdminNotes *string `json:"admin_notes,omitempty" valid:"-"`
}

type DisputeRepo interface {
	// FileDispute fails with ErrDuplicatePending while another Pending dispute
	// exists for the same attendance record.
	FileDispute(ctx context.Context, attendanceID, teacherID int, reason string) (*AttendanceDispute, error)

	// Resolve applies the terminal decision. Approval deletes the attendance
	// record and adjusts the period's bill in the same transaction.
	Resolve(ctx context.Context, disputeID int, decision string, notes *string, resolvedBy int) (*AttendanceDispute, error)

	GetDispute(ctx context.Context, disputeID int) (*AttendanceDispute, error)
	ListByStatus(ctx context.Context, status string) (*[]AttendanceDispute, error)
	ListByTeacher(ctx context.Context, teacherID int, status string) (*[]AttendanceDispute, error)
}

type DisputeUseCase interface {
	FileDispute(ctx context.Context, userID int, req *FileDisputeRequest) (*AttendanceDispute, error)
	Resolve(ctx context.Context, disputeID int, req *ResolveDisputeRequest, resolvedBy int) (*AttendanceDispute, error)
	GetDispute(ctx context.Context, disputeID int) (*AttendanceDispute, error)
	ListByStatus(ctx context.Context, status string) (*[]AttendanceDispute, error)
	ListMyDisputes(ctx context.Context, userID int, status string) (*[]AttendanceDispute, error)
}
