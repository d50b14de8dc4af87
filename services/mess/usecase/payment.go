package usecase

import (
	"context"
	"fmt"
	"messadmin/domain"
	"time"

	"github.com/asaskevich/govalidator"
)

type paymentUseCase struct {
	billRepo    domain.BillRepo
	teacherRepo domain.TeacherRepo
	gateway     domain.PaymentGateway
	TimeOut     time.Duration
}

func NewPaymentUseCase(billRepo domain.BillRepo, teacherRepo domain.TeacherRepo, gw domain.PaymentGateway, timeOut time.Duration) domain.PaymentUseCase {
	return &paymentUseCase{
		billRepo:    billRepo,
		teacherRepo: teacherRepo,
		gateway:     gw,
		TimeOut:     timeOut,
	}
}

func (pu *paymentUseCase) CreatePaymentToken(ctx context.Context, billID, userID int) (*domain.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.TimeOut)
	defer cancel()

	teacher, err := pu.teacherRepo.GetTeacherByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	token := pu.gateway.GeneratePaymentToken()
	return pu.billRepo.StampPaymentToken(ctx, billID, teacher.TeacherID, token)
}

// ProcessPayment charges the bill's full outstanding total. A gateway decline
// surfaces as ErrPaymentDeclined with the processor's message; the bill is
// only settled on success.
func (pu *paymentUseCase) ProcessPayment(ctx context.Context, billID, userID int, card *domain.CardDetails) (*domain.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.TimeOut)
	defer cancel()

	if _, err := govalidator.ValidateStruct(card); err != nil {
		return nil, err
	}

	teacher, err := pu.teacherRepo.GetTeacherByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	bill, err := pu.billRepo.GetBillForTeacher(ctx, billID, teacher.TeacherID)
	if err != nil {
		return nil, err
	}
	if bill.IsPaid {
		return nil, domain.ErrAlreadyPaid
	}

	result := pu.gateway.ProcessPayment(*card, bill.TotalBill)
	if !result.Success {
		return nil, fmt.Errorf("%s: %w", result.ErrorMessage, domain.ErrPaymentDeclined)
	}

	return pu.billRepo.SettlePayment(ctx, billID, teacher.TeacherID, result.TransactionID, "Card")
}
