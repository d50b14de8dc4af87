package usecase

import (
	"context"
	"messadmin/domain"
	"messadmin/services/mess/repository"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeGateway approves or declines deterministically.
type fakeGateway struct {
	declineWith string
}

func (g *fakeGateway) ProcessPayment(card domain.CardDetails, amount decimal.Decimal) domain.PaymentResult {
	if g.declineWith != "" {
		return domain.PaymentResult{
			Success:       false,
			ProcessedDate: time.Now(),
			ErrorMessage:  g.declineWith,
		}
	}
	return domain.PaymentResult{
		Success:         true,
		TransactionID:   "TXN-TEST-1",
		ProcessedAmount: amount,
		ProcessedDate:   time.Now(),
	}
}

func (g *fakeGateway) GeneratePaymentToken() string {
	return "TESTTOKEN0000001"
}

type paymentFixture struct {
	db        *gorm.DB
	billRepo  domain.BillRepo
	teacher   *domain.Teacher
	user      *domain.User
	billID    int
	billTotal decimal.Decimal
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.BillingConfiguration{},
		&domain.Teacher{},
		&domain.Attendance{},
		&domain.Bill{},
		&domain.AttendanceDispute{},
	))

	require.NoError(t, db.Create(&domain.BillingConfiguration{
		MonthlyWaterBillTotal: decimal.NewFromInt(5000),
		BreakfastRate:         decimal.NewFromInt(30),
		LunchRate:             decimal.NewFromInt(60),
		DinnerRate:            decimal.NewFromInt(50),
		LastUpdated:           time.Now(),
	}).Error)

	user := &domain.User{
		Username: "asha",
		Password: "irrelevant",
		Role:     domain.RoleTeacher,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)

	teacher := &domain.Teacher{
		FullName:    "Asha Verma",
		Email:       "asha@example.edu",
		PhoneNumber: "0100000000",
		Department:  "Mathematics",
		IsActive:    true,
		UserID:      &user.UserID,
	}
	require.NoError(t, db.Create(teacher).Error)

	require.NoError(t, db.Create(&domain.Attendance{
		TeacherID:      teacher.TeacherID,
		Date:           time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		BreakfastTaken: true,
		LunchTaken:     true,
		DinnerTaken:    true,
		RecordedDate:   time.Now(),
	}).Error)

	billRepo := repository.NewBillRepository(db)
	bill, err := billRepo.Generate(context.Background(), teacher.TeacherID, 6, 2025, user.UserID)
	require.NoError(t, err)

	return &paymentFixture{
		db:        db,
		billRepo:  billRepo,
		teacher:   teacher,
		user:      user,
		billID:    bill.BillID,
		billTotal: bill.TotalBill,
	}
}

func (f *paymentFixture) useCase(gw domain.PaymentGateway) domain.PaymentUseCase {
	teacherRepo := repository.NewTeacherRepository(f.db)
	return NewPaymentUseCase(f.billRepo, teacherRepo, gw, 5*time.Second)
}

func TestCreatePaymentTokenStampsBill(t *testing.T) {
	f := newPaymentFixture(t)
	uc := f.useCase(&fakeGateway{})

	bill, err := uc.CreatePaymentToken(context.Background(), f.billID, f.user.UserID)
	require.NoError(t, err)
	require.NotNil(t, bill.PaymentToken)
	assert.Equal(t, "TESTTOKEN0000001", *bill.PaymentToken)
}

func TestProcessPaymentSettlesBill(t *testing.T) {
	f := newPaymentFixture(t)
	uc := f.useCase(&fakeGateway{})

	card := &domain.CardDetails{
		CardNumber:     "4111111111111111",
		CardHolderName: "Asha Verma",
		ExpiryDate:     "12/27",
		CVV:            "123",
	}
	bill, err := uc.ProcessPayment(context.Background(), f.billID, f.user.UserID, card)
	require.NoError(t, err)

	assert.True(t, bill.IsPaid)
	require.NotNil(t, bill.TransactionID)
	assert.Equal(t, "TXN-TEST-1", *bill.TransactionID)
	require.NotNil(t, bill.PaymentMethod)
	assert.Equal(t, "Card", *bill.PaymentMethod)
	assert.True(t, bill.UnpaidBalance.IsZero())

	// a second payment attempt hits the settled bill
	_, err = uc.ProcessPayment(context.Background(), f.billID, f.user.UserID, card)
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
}

func TestProcessPaymentDeclineLeavesBillUnpaid(t *testing.T) {
	f := newPaymentFixture(t)
	uc := f.useCase(&fakeGateway{declineWith: "Payment declined by bank."})

	card := &domain.CardDetails{
		CardNumber:     "4111111111111111",
		CardHolderName: "Asha Verma",
		ExpiryDate:     "12/27",
		CVV:            "123",
	}
	_, err := uc.ProcessPayment(context.Background(), f.billID, f.user.UserID, card)
	assert.ErrorIs(t, err, domain.ErrPaymentDeclined)

	var bill domain.Bill
	require.NoError(t, f.db.First(&bill, f.billID).Error)
	assert.False(t, bill.IsPaid)
	assert.True(t, bill.TotalBill.Equal(f.billTotal))
}
