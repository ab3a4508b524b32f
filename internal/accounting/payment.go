package accounting

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/messledger/internal/domain/models"
)

var (
	// ErrInvalidPayment covers non-positive amounts and splits that do not add up.
	ErrInvalidPayment = errors.New("invalid payment")
	// ErrOverpayment means the payment exceeds what is due.
	ErrOverpayment = errors.New("payment exceeds amount due")
)

// PaymentSplit is how a received amount was tendered.
type PaymentSplit struct {
	Method   string        `json:"payment_method"`
	Received models.Amount `json:"received_amount"`
	Cash     models.Amount `json:"cash_amount"`
	Bank     models.Amount `json:"bank_amount"`
}

// SplitPayment assigns a received amount to the cash and bank columns. Cash and
// bank payments take the whole amount; a cash-bank payment uses the given
// split, which must add up to the received amount.
func SplitPayment(method string, received, cash, bank decimal.Decimal) (PaymentSplit, error) {
	if !received.IsPositive() {
		return PaymentSplit{}, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidPayment)
	}

	split := PaymentSplit{Method: method, Received: models.NewAmount(received)}
	switch method {
	case models.PaymentCash:
		split.Cash = models.NewAmount(received)
		split.Bank = models.NewAmount(decimal.Zero)
	case models.PaymentBank:
		split.Cash = models.NewAmount(decimal.Zero)
		split.Bank = models.NewAmount(received)
	case models.PaymentCashBank:
		if cash.IsNegative() || bank.IsNegative() || !cash.Add(bank).Equal(received) {
			return PaymentSplit{}, fmt.Errorf("%w: cash %s + bank %s must equal %s", ErrInvalidPayment, cash.StringFixed(2), bank.StringFixed(2), received.StringFixed(2))
		}
		split.Cash = models.NewAmount(cash)
		split.Bank = models.NewAmount(bank)
	default:
		return PaymentSplit{}, fmt.Errorf("%w: unsupported payment method %q", ErrInvalidPayment, method)
	}

	return split, nil
}

// CheckDue rejects a payment larger than the outstanding amount.
func CheckDue(received, due decimal.Decimal) error {
	if received.GreaterThan(due) {
		return fmt.Errorf("%w: %s > %s", ErrOverpayment, received.StringFixed(2), due.StringFixed(2))
	}
	return nil
}
