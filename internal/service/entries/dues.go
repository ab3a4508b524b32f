package entries

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/messledger/internal/accounting"
	"github.com/mamadbah2/messledger/internal/domain/models"
)

// CreditPaymentRequest is money received from a credit customer.
type CreditPaymentRequest struct {
	CreditUserID   int    `json:"credit_user_id" validate:"required,gt=0"`
	PaymentMethod  string `json:"payment_method" validate:"required,oneof=cash bank cash-bank"`
	ReceivedAmount string `json:"received_amount" validate:"required,numeric"`
	CashAmount     string `json:"cash_amount" validate:"omitempty,numeric"`
	BankAmount     string `json:"bank_amount" validate:"omitempty,numeric"`
	Date           string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// CreditPayment splits the payment between cash and bank, checks it against
// the customer's dues and records it.
func (s *Service) CreditPayment(ctx context.Context, req CreditPaymentRequest) (models.CreditTransaction, error) {
	if err := s.check(req); err != nil {
		return models.CreditTransaction{}, err
	}
	received, err := positive("received_amount", req.ReceivedAmount)
	if err != nil {
		return models.CreditTransaction{}, err
	}
	split, err := s.split(req.PaymentMethod, received, req.CashAmount, req.BankAmount)
	if err != nil {
		return models.CreditTransaction{}, err
	}

	user, err := s.backend.CreditUser(ctx, req.CreditUserID)
	if err != nil {
		return models.CreditTransaction{}, fmt.Errorf("load credit user %d: %w", req.CreditUserID, err)
	}
	if err := accounting.CheckDue(received, user.TotalDue.Decimal()); err != nil {
		return models.CreditTransaction{}, invalid("received_amount", err.Error())
	}

	txn, err := s.backend.CreateCreditTransaction(ctx, models.CreditTransaction{
		CreditUser:     req.CreditUserID,
		ReceivedAmount: split.Received,
		CashAmount:     split.Cash,
		BankAmount:     split.Bank,
		PaymentMethod:  split.Method,
		Date:           s.dateOrToday(req.Date),
	})
	if err != nil {
		return models.CreditTransaction{}, fmt.Errorf("record credit payment: %w", err)
	}

	s.logger.Info("credit payment recorded",
		zap.Int("credit_user", req.CreditUserID),
		zap.String("method", split.Method),
		zap.String("received", split.Received.String()),
	)
	return txn, nil
}

func (s *Service) split(method string, received decimal.Decimal, cashText, bankText string) (accounting.PaymentSplit, error) {
	cash, err := optional("cash_amount", cashText)
	if err != nil {
		return accounting.PaymentSplit{}, err
	}
	bank, err := optional("bank_amount", bankText)
	if err != nil {
		return accounting.PaymentSplit{}, err
	}
	split, err := accounting.SplitPayment(method, received, cash, bank)
	if err != nil {
		return accounting.PaymentSplit{}, invalid("payment_method", err.Error())
	}
	return split, nil
}

func (s *Service) dateOrToday(date string) string {
	if date != "" {
		return date
	}
	return s.now().Format(dateFormat)
}

// RenewMessRequest renews a mess subscription for a number of weeks.
type RenewMessRequest struct {
	StartDate      string `json:"start_date" validate:"required,datetime=2006-01-02"`
	Weeks          int    `json:"weeks" validate:"required,gte=1,lte=52"`
	DiscountAmount string `json:"discount_amount" validate:"omitempty,numeric"`
	PaidAmount     string `json:"paid_amount" validate:"omitempty,numeric"`
	PaymentMethod  string `json:"payment_method" validate:"omitempty,oneof=cash bank cash-bank"`
	CashAmount     string `json:"cash_amount" validate:"omitempty,numeric"`
	BankAmount     string `json:"bank_amount" validate:"omitempty,numeric"`
}

// RenewMess prices the renewal from the member's weekly menus and replaces the
// subscription's period and amounts.
func (s *Service) RenewMess(ctx context.Context, messID int, req RenewMessRequest) (models.MessMember, error) {
	if err := s.check(req); err != nil {
		return models.MessMember{}, err
	}
	discount, err := optional("discount_amount", req.DiscountAmount)
	if err != nil {
		return models.MessMember{}, err
	}
	paid, err := optional("paid_amount", req.PaidAmount)
	if err != nil {
		return models.MessMember{}, err
	}

	member, err := s.backend.MessMember(ctx, messID)
	if err != nil {
		return models.MessMember{}, fmt.Errorf("load mess member %d: %w", messID, err)
	}
	menus, err := s.backend.Menus(member.MessType.ID).Collect(ctx)
	if err != nil {
		return models.MessMember{}, fmt.Errorf("load menus for mess type %d: %w", member.MessType.ID, err)
	}

	quote, err := accounting.QuoteRenewal(menus, req.Weeks, discount)
	if err != nil {
		return models.MessMember{}, invalid("weeks", err.Error())
	}
	if quote.GrandTotal.Decimal().IsNegative() {
		return models.MessMember{}, invalid("discount_amount", "discount exceeds the renewal total")
	}

	split := accounting.PaymentSplit{
		Method: req.PaymentMethod,
		Cash:   models.NewAmount(decimal.Zero),
		Bank:   models.NewAmount(decimal.Zero),
	}
	if paid.IsPositive() {
		if err := accounting.CheckDue(paid, quote.GrandTotal.Decimal()); err != nil {
			return models.MessMember{}, invalid("paid_amount", err.Error())
		}
		if split, err = s.split(req.PaymentMethod, paid, req.CashAmount, req.BankAmount); err != nil {
			return models.MessMember{}, err
		}
	}

	start, _ := time.Parse(dateFormat, req.StartDate)
	end := start.AddDate(0, 0, 7*req.Weeks)
	menuIDs := make([]int, 0, len(menus))
	for _, m := range menus {
		menuIDs = append(menuIDs, m.ID)
	}

	renewed, err := s.backend.RenewMess(ctx, messID, models.MessRenewal{
		StartDate:      req.StartDate,
		EndDate:        end.Format(dateFormat),
		MessTypeID:     member.MessType.ID,
		TotalAmount:    quote.TotalAmount,
		GrandTotal:     quote.GrandTotal,
		DiscountAmount: quote.Discount,
		PaidAmount:     models.NewAmount(paid),
		PendingAmount:  models.NewAmount(quote.GrandTotal.Decimal().Sub(paid)),
		PaymentMethod:  split.Method,
		CashAmount:     split.Cash,
		BankAmount:     split.Bank,
		Menus:          menuIDs,
	})
	if err != nil {
		return models.MessMember{}, fmt.Errorf("renew mess %d: %w", messID, err)
	}

	s.logger.Info("mess renewed", zap.Int("mess", messID), zap.Int("weeks", req.Weeks), zap.String("grand_total", quote.GrandTotal.String()))
	return renewed, nil
}
