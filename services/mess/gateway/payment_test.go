package gateway

import (
	"messadmin/domain"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedGateway(declined bool) *simulatedGateway {
	return &simulatedGateway{
		now:     func() time.Time { return time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC) },
		decline: func() bool { return declined },
	}
}

func validCard() domain.CardDetails {
	return domain.CardDetails{
		CardNumber:     "4111 1111 1111 1111",
		CardHolderName: "Asha Verma",
		ExpiryDate:     "12/27",
		CVV:            "123",
	}
}

func TestProcessPaymentSucceeds(t *testing.T) {
	gw := fixedGateway(false)
	result := gw.ProcessPayment(validCard(), decimal.NewFromInt(4500))

	require.True(t, result.Success)
	assert.True(t, strings.HasPrefix(result.TransactionID, "TXN20250701120000"))
	assert.True(t, decimal.NewFromInt(4500).Equal(result.ProcessedAmount))
	assert.Empty(t, result.ErrorMessage)
}

func TestProcessPaymentValidation(t *testing.T) {
	gw := fixedGateway(false)
	amount := decimal.NewFromInt(100)

	tests := []struct {
		name   string
		mutate func(*domain.CardDetails)
	}{
		{"short card number", func(c *domain.CardDetails) { c.CardNumber = "1234" }},
		{"letters in card number", func(c *domain.CardDetails) { c.CardNumber = "4111abcd11111111" }},
		{"missing holder name", func(c *domain.CardDetails) { c.CardHolderName = "  " }},
		{"bad expiry format", func(c *domain.CardDetails) { c.ExpiryDate = "2027-12" }},
		{"impossible month", func(c *domain.CardDetails) { c.ExpiryDate = "13/27" }},
		{"bad cvv", func(c *domain.CardDetails) { c.CVV = "12" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := validCard()
			tt.mutate(&card)
			result := gw.ProcessPayment(card, amount)
			assert.False(t, result.Success)
			assert.NotEmpty(t, result.ErrorMessage)
		})
	}
}

func TestProcessPaymentExpiredCard(t *testing.T) {
	gw := fixedGateway(false)

	card := validCard()
	card.ExpiryDate = "06/25"
	result := gw.ProcessPayment(card, decimal.NewFromInt(100))
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "expired")

	// valid through the last day of the expiry month
	card.ExpiryDate = "07/25"
	result = gw.ProcessPayment(card, decimal.NewFromInt(100))
	assert.True(t, result.Success)
}

func TestProcessPaymentRejectsNonPositiveAmount(t *testing.T) {
	gw := fixedGateway(false)

	result := gw.ProcessPayment(validCard(), decimal.Zero)
	assert.False(t, result.Success)

	result = gw.ProcessPayment(validCard(), decimal.NewFromInt(-10))
	assert.False(t, result.Success)
}

func TestProcessPaymentDecline(t *testing.T) {
	gw := fixedGateway(true)

	result := gw.ProcessPayment(validCard(), decimal.NewFromInt(100))
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "declined")
	assert.Empty(t, result.TransactionID)
}

func TestGeneratePaymentToken(t *testing.T) {
	gw := fixedGateway(false)

	token := gw.GeneratePaymentToken()
	assert.Len(t, token, 16)
	assert.Equal(t, strings.ToUpper(token), token)

	assert.NotEqual(t, token, gw.GeneratePaymentToken())
}
