package gateway

import (
	"fmt"
	"math/rand"
	"messadmin/domain"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
)

// simulatedGateway stands in for a real card processor: it validates card
// details, declines a small fraction of payments at random, and mints
// transaction ids. Nothing leaves the process.
type simulatedGateway struct {
	now     func() time.Time
	decline func() bool
}

func NewSimulatedGateway() domain.PaymentGateway {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &simulatedGateway{
		now: time.Now,
		// Roughly one in twenty payments fails, like a real processor on a
		// bad day.
		decline: func() bool { return rng.Intn(100) < 5 },
	}
}

func (g *simulatedGateway) ProcessPayment(card domain.CardDetails, amount decimal.Decimal) domain.PaymentResult {
	fail := func(msg string) domain.PaymentResult {
		return domain.PaymentResult{
			Success:       false,
			ProcessedDate: g.now(),
			ErrorMessage:  msg,
		}
	}

	number := strings.ReplaceAll(strings.ReplaceAll(card.CardNumber, " ", ""), "-", "")
	if !cardNumberPattern.MatchString(number) {
		return fail("Invalid card number. Must be 16 digits.")
	}
	if strings.TrimSpace(card.CardHolderName) == "" {
		return fail("Card holder name is required.")
	}
	if !expiryPattern.MatchString(card.ExpiryDate) {
		return fail("Invalid expiry date. Use MM/YY format.")
	}
	if expired(card.ExpiryDate, g.now()) {
		return fail("Card has expired.")
	}
	if !cvvPattern.MatchString(card.CVV) {
		return fail("Invalid CVV. Must be 3 or 4 digits.")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return fail("Payment amount must be greater than zero.")
	}

	if g.decline() {
		return fail("Payment declined by bank. Please try another card.")
	}

	now := g.now()
	return domain.PaymentResult{
		Success:         true,
		TransactionID:   transactionID(now),
		ProcessedAmount: amount,
		ProcessedDate:   now,
	}
}

// GeneratePaymentToken returns a 16 character upper-case token derived from a
// fresh uuid.
func (g *simulatedGateway) GeneratePaymentToken() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:16])
}

func transactionID(now time.Time) string {
	return fmt.Sprintf("TXN%s%04d", now.Format("20060102150405"), rand.Intn(10000))
}

// expired treats a card as valid through the last day of its expiry month.
func expired(expiry string, now time.Time) bool {
	parts := strings.Split(expiry, "/")
	month, _ := strconv.Atoi(parts[0])
	year, _ := strconv.Atoi(parts[1])
	year += 2000

	endOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return !now.Before(endOfMonth)
}
