package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type CardDetails struct {
	CardNumber     string `json:"card_number" valid:"required~Card number is required"`
	CardHolderName string `json:"card_holder_name" valid:"required~Card holder name is required"`
	ExpiryDate     string `json:"expiry_date" valid:"required~Expiry date is required"`
	CVV            string `json:"cvv" valid:"required~CVV is required"`
}

type PaymentResult struct {
	Success         bool            `json:"success"`
	TransactionID   string          `json:"transaction_id,omitempty"`
	ProcessedAmount decimal.Decimal `json:"processed_amount"`
	ProcessedDate   time.Time       `json:"processed_date"`
	ErrorMessage    string          `json:"error_message,omitempty"`
}

// PaymentGateway is the external card processor. The bundled implementation
// is a simulator; only the success/transaction-id branch feeds settlement.
type PaymentGateway interface {
	ProcessPayment(card CardDetails, amount decimal.Decimal) PaymentResult
	GeneratePaymentToken() string
}

type PaymentUseCase interface {
	// CreatePaymentToken stamps a fresh token on an unpaid bill owned by the
	// calling teacher's user.
	CreatePaymentToken(ctx context.Context, billID, userID int) (*Bill, error)

	// ProcessPayment runs the gateway and, on success, settles the bill and
	// purges the billed period's attendance.
	ProcessPayment(ctx context.Context, billID, userID int, card *CardDetails) (*Bill, error)
}
