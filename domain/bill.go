package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Bill struct {
	BillID             int             `gorm:"primaryKey;autoIncrement" json:"bill_id"`
	TeacherID          int             `gorm:"not null;uniqueIndex:idx_bill_teacher_period" json:"teacher_id"`
	Teacher            *Teacher        `gorm:"foreignKey:TeacherID;references:TeacherID;constraint:OnDelete:CASCADE" json:"teacher,omitempty" valid:"-"`
	Month              int             `gorm:"not null;uniqueIndex:idx_bill_teacher_period" json:"month"`
	Year               int             `gorm:"not null;uniqueIndex:idx_bill_teacher_period" json:"year"`
	FoodBill           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"food_bill"`
	WaterBill          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"water_bill"`
	TotalBill          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_bill"`
	TotalMealsConsumed int             `gorm:"not null;default:0" json:"total_meals_consumed"`
	IsPaid             bool            `gorm:"not null;default:false" json:"is_paid"`
	PaidDate           *time.Time      `json:"paid_date,omitempty"`
	GeneratedDate      time.Time       `json:"generated_date"`
	GeneratedBy        *int            `json:"generated_by,omitempty"`
	// UnpaidBalance is signed: positive carries debt forward, negative is a
	// credit owed to the teacher on the next bill.
	UnpaidBalance decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unpaid_balance"`
	PaymentToken  *string         `gorm:"type:varchar(64)" json:"payment_token,omitempty"`
	PaymentMethod *string         `gorm:"type:varchar(50)" json:"payment_method,omitempty"`
	TransactionID *string         `gorm:"type:varchar(64)" json:"transaction_id,omitempty"`
}

type GenerateBillRequest struct {
	TeacherID int `json:"teacher_id" valid:"required~Teacher is required"`
	Month     int `json:"month" valid:"required~Month is required,range(1|12)~Month must be between 1 and 12"`
	Year      int `json:"year" valid:"required~Year is required"`
}

type BillRepo interface {
	// Generate runs the whole reconciliation sequence for one teacher-period
	// in a single transaction: rate lookup, meal counting, water share,
	// carry-forward, create-or-overwrite, attendance purge.
	Generate(ctx context.Context, teacherID, month, year int, generatedBy int) (*Bill, error)

	GetBill(ctx context.Context, billID int) (*Bill, error)
	GetBillForTeacher(ctx context.Context, billID, teacherID int) (*Bill, error)
	// GetBillForPeriod finds the bill covering (teacher, month, year) whatever
	// its paid state, ErrNotFound when the period has never been billed.
	GetBillForPeriod(ctx context.Context, teacherID, month, year int) (*Bill, error)
	ListBills(ctx context.Context, limit int) (*[]Bill, error)
	ListBillsByTeacher(ctx context.Context, teacherID int) (*[]Bill, error)

	// MarkPaid settles the bill without a gateway result and purges the
	// period's attendance.
	MarkPaid(ctx context.Context, billID int) (*Bill, error)

	// SettlePayment is MarkPaid plus payment metadata from a successful
	// gateway transaction. Restricted to the owning teacher.
	SettlePayment(ctx context.Context, billID, teacherID int, transactionID, method string) (*Bill, error)

	StampPaymentToken(ctx context.Context, billID, teacherID int, token string) (*Bill, error)

	// DeleteBill removes a settled bill; unpaid bills cannot be deleted.
	DeleteBill(ctx context.Context, billID int) error
}

type BillUseCase interface {
	GenerateBill(ctx context.Context, req *GenerateBillRequest, generatedBy int) (*Bill, error)
	GenerateMonthlyBills(ctx context.Context, month, year int, generatedBy int) (generated int, failed []error)
	GetBill(ctx context.Context, billID int) (*Bill, error)
	GetBills(ctx context.Context, limit int) (*[]Bill, error)
	GetMyBills(ctx context.Context, userID int) (*[]Bill, error)
	GetMyBillDetail(ctx context.Context, billID, userID int) (*Bill, *[]Attendance, error)
	MarkPaid(ctx context.Context, billID int) (*Bill, error)
	DeleteBill(ctx context.Context, billID int) error
}
