package domain

import (
	"context"
	"time"
)

type Attendance struct {
	AttendanceID   int       `gorm:"primaryKey;autoIncrement" json:"attendance_id"`
	TeacherID      int       `gorm:"not null;uniqueIndex:idx_attendance_teacher_date" json:"teacher_id"`
	Teacher        *Teacher  `gorm:"foreignKey:TeacherID;references:TeacherID;constraint:OnDelete:CASCADE" json:"teacher,omitempty" valid:"-"`
	Date           time.Time `gorm:"not null;uniqueIndex:idx_attendance_teacher_date" json:"date"`
	BreakfastTaken bool      `gorm:"not null;default:false" json:"breakfast_taken"`
	LunchTaken     bool      `gorm:"not null;default:false" json:"lunch_taken"`
	DinnerTaken    bool      `gorm:"not null;default:false" json:"dinner_taken"`
	Remarks        *string   `gorm:"type:varchar(500)" json:"remarks,omitempty"`
	RecordedBy     *int      `json:"recorded_by,omitempty"`
	RecordedDate   time.Time `json:"recorded_date"`
}

// Flags collects the three meal booleans.
func (a *Attendance) Flags() MealFlags {
	return MealFlags{Breakfast: a.BreakfastTaken, Lunch: a.LunchTaken, Dinner: a.DinnerTaken}
}

func (a *Attendance) SetFlags(f MealFlags) {
	a.BreakfastTaken = f.Breakfast
	a.LunchTaken = f.Lunch
	a.DinnerTaken = f.Dinner
}

type MarkAttendanceRequest struct {
	TeacherID int       `json:"teacher_id" valid:"required~Teacher is required"`
	Date      time.Time `json:"date"`
	MealFlags
	Remarks *string `json:"remarks,omitempty" valid:"-"`
}

type UpdateAttendanceRequest struct {
	MealFlags
	Remarks *string `json:"remarks,omitempty" valid:"-"`
}

// TeacherMealSummary is one row of the monthly attendance report.
type TeacherMealSummary struct {
	TeacherID      int    `json:"teacher_id"`
	TeacherName    string `json:"teacher_name"`
	TotalBreakfast int    `json:"total_breakfast"`
	TotalLunch     int    `json:"total_lunch"`
	TotalDinner    int    `json:"total_dinner"`
	TotalMeals     int    `json:"total_meals"`
}

// DailyMealSummary is one marked day in the monthly report.
type DailyMealSummary struct {
	Date          time.Time `json:"date"`
	TeachersCount int       `json:"teachers_count"`
	TotalMeals    int       `json:"total_meals"`
}

type MonthlyAttendanceReport struct {
	Month    int                  `json:"month"`
	Year     int                  `json:"year"`
	Teachers []TeacherMealSummary `json:"teachers"`
	Days     []DailyMealSummary   `json:"days"`
}

type AttendanceRepo interface {
	// RecordMeals upserts the (teacher, day) record. All-false flags fail with
	// ErrNoMealsSelected before anything is written.
	RecordMeals(ctx context.Context, req *MarkAttendanceRequest, recordedBy int) (*Attendance, error)

	// EditMeals returns the pre- and post-edit flag sets and adjusts the
	// period's bill, if one exists, in the same transaction.
	EditMeals(ctx context.Context, attendanceID int, req *UpdateAttendanceRequest, recordedBy int) (oldFlags, newFlags MealFlags, err error)

	// DeleteRecord removes the record, adjusting the period's bill in the same
	// transaction, and returns what was removed. ownerTeacherID > 0 restricts
	// deletion to that teacher's own records.
	DeleteRecord(ctx context.Context, attendanceID int, ownerTeacherID int) (*Attendance, error)

	ListByDate(ctx context.Context, date time.Time) (*[]Attendance, error)
	ListPeriod(ctx context.Context, teacherID, month, year int) (*[]Attendance, error)
	ListRange(ctx context.Context, teacherID int, from, to time.Time) (*[]Attendance, error)
	AnyOnDate(ctx context.Context, date time.Time) (bool, error)
	MonthlyReport(ctx context.Context, month, year int) (*MonthlyAttendanceReport, error)
}

type AttendanceUseCase interface {
	MarkAttendance(ctx context.Context, req *MarkAttendanceRequest, recordedBy int) (*Attendance, error)
	EditAttendance(ctx context.Context, attendanceID int, req *UpdateAttendanceRequest, recordedBy int) error
	DeleteAttendance(ctx context.Context, attendanceID int) error
	DeleteOwnAttendance(ctx context.Context, attendanceID, userID int) error
	GetAttendanceByDate(ctx context.Context, date time.Time) (*[]Attendance, error)
	GetMyAttendance(ctx context.Context, userID int, from, to time.Time) (*[]Attendance, error)
	GetMonthlyReport(ctx context.Context, month, year int) (*MonthlyAttendanceReport, error)
	AutoMarkToday(ctx context.Context) (int, error)
}
