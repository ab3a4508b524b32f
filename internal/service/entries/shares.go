package entries

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/messledger/internal/accounting"
	"github.com/mamadbah2/messledger/internal/domain/models"
)

// ShareAllocation overrides the configured share of one user.
type ShareAllocation struct {
	ShareUserID int    `json:"share_user_id" validate:"required,gt=0"`
	Percentage  string `json:"percentage" validate:"required,numeric"`
}

// DistributionRequest splits a period's profit or loss among share users.
// Without allocations every share user receives their configured share.
type DistributionRequest struct {
	Date        string            `json:"date" validate:"required,datetime=2006-01-02"`
	PeriodFrom  string            `json:"period_from" validate:"required,datetime=2006-01-02"`
	PeriodTo    string            `json:"period_to" validate:"required,datetime=2006-01-02"`
	Status      string            `json:"status" validate:"required,oneof=profit lose"`
	Amount      string            `json:"amount" validate:"required,numeric"`
	Allocations []ShareAllocation `json:"allocations" validate:"omitempty,dive"`
}

// DistributionResult is the recorded distribution with its computed summary.
type DistributionResult struct {
	Transaction models.ProfitLossShareTransaction `json:"transaction"`
	Summary     accounting.Distribution           `json:"summary"`
}

// DistributeProfitLoss computes each user's share and records the distribution.
// Percentages are reported but not required to add up to 100.
func (s *Service) DistributeProfitLoss(ctx context.Context, req DistributionRequest) (DistributionResult, error) {
	if err := s.check(req); err != nil {
		return DistributionResult{}, err
	}
	if req.PeriodTo < req.PeriodFrom {
		return DistributionResult{}, invalid("period_to", "gtefield=period_from")
	}
	base, err := positive("amount", req.Amount)
	if err != nil {
		return DistributionResult{}, err
	}

	users, err := s.backend.ShareUsers().Collect(ctx)
	if err != nil {
		return DistributionResult{}, fmt.Errorf("load share users: %w", err)
	}

	var summary accounting.Distribution
	if len(req.Allocations) == 0 {
		summary = accounting.Distribute(req.Status, base, users)
	} else {
		byID := make(map[int]models.ShareUser, len(users))
		for _, u := range users {
			byID[u.ID] = u
		}
		lines := make([]accounting.ShareLine, 0, len(req.Allocations))
		for i, a := range req.Allocations {
			user, ok := byID[a.ShareUserID]
			if !ok {
				return DistributionResult{}, invalid(fmt.Sprintf("allocations[%d].share_user_id", i), "unknown share user")
			}
			pct, err := optional(fmt.Sprintf("allocations[%d].percentage", i), a.Percentage)
			if err != nil {
				return DistributionResult{}, err
			}
			lines = append(lines, accounting.NewShareLine(user, req.Status, pct, base))
		}
		summary = accounting.Summarize(req.Status, base, lines)
	}

	if !summary.FullyAllocated {
		s.logger.Warn("share percentages do not add up to 100",
			zap.String("total_percentage", accounting.PercentageTotal(summary.Lines).String()))
	}

	txn := models.ProfitLossShareTransaction{
		CreatedDate:     req.Date,
		PeriodFrom:      req.PeriodFrom,
		PeriodTo:        req.PeriodTo,
		Status:          req.Status,
		ProfitAmount:    models.NewAmount(decimal.Zero),
		LossAmount:      models.NewAmount(decimal.Zero),
		TotalAmount:     summary.TotalAmount,
		TotalPercentage: summary.TotalPercentage,
	}
	if req.Status == models.ShareProfit {
		txn.ProfitAmount = models.NewAmount(base)
	} else {
		txn.LossAmount = models.NewAmount(base)
	}
	for _, line := range summary.Lines {
		txn.ShareUserTransactions = append(txn.ShareUserTransactions, models.ShareUserTransaction{
			ShareUser:        line.ShareUserID,
			ProfitLose:       line.ProfitLose,
			Percentage:       line.Percentage,
			Amount:           line.Amount,
			PercentageAmount: line.PercentageAmount,
			BalanceAmount:    line.PercentageAmount,
		})
	}

	created, err := s.backend.CreateProfitLossShare(ctx, txn)
	if err != nil {
		return DistributionResult{}, fmt.Errorf("record profit/loss share: %w", err)
	}

	s.logger.Info("profit/loss distributed",
		zap.String("status", req.Status),
		zap.String("amount", base.StringFixed(2)),
		zap.Int("lines", len(summary.Lines)),
	)
	return DistributionResult{Transaction: created, Summary: summary}, nil
}

// ShareLineEdit changes the percentage and optionally the base of one line.
type ShareLineEdit struct {
	Percentage string `json:"percentage" validate:"required,numeric"`
	Amount     string `json:"amount" validate:"omitempty,numeric"`
	ProfitLose string `json:"profit_lose" validate:"omitempty,oneof=profit lose"`
}

// EditShareUserTransaction recomputes a single line. Other lines of the same
// distribution are left as they are.
func (s *Service) EditShareUserTransaction(ctx context.Context, id int, req ShareLineEdit) (models.ShareUserTransaction, error) {
	if err := s.check(req); err != nil {
		return models.ShareUserTransaction{}, err
	}
	pct, err := optional("percentage", req.Percentage)
	if err != nil {
		return models.ShareUserTransaction{}, err
	}

	current, err := s.backend.ShareUserTransaction(ctx, id)
	if err != nil {
		return models.ShareUserTransaction{}, fmt.Errorf("load share user transaction %d: %w", id, err)
	}

	base := current.Amount.Decimal()
	if req.Amount != "" {
		if base, err = positive("amount", req.Amount); err != nil {
			return models.ShareUserTransaction{}, err
		}
	}
	profitLose := current.ProfitLose
	if req.ProfitLose != "" {
		profitLose = req.ProfitLose
	}

	line := accounting.OverrideShare(accounting.ShareLine{ShareUserID: current.ShareUser, ProfitLose: profitLose}, pct, base)
	updated, err := s.backend.UpdateShareUserTransaction(ctx, id, models.ShareUserTransactionUpdate{
		Percentage:       line.Percentage,
		ProfitLose:       profitLose,
		Amount:           line.Amount,
		PercentageAmount: line.PercentageAmount,
		ShareUser:        current.ShareUser,
		Transaction:      current.Transaction,
	})
	if err != nil {
		return models.ShareUserTransaction{}, fmt.Errorf("update share user transaction %d: %w", id, err)
	}
	return updated, nil
}

// SharePaymentRequest pays out part of a share line.
type SharePaymentRequest struct {
	ShareUserTransactionID int    `json:"share_user_transaction_id" validate:"required,gt=0"`
	PaidDate               string `json:"paid_date" validate:"omitempty,datetime=2006-01-02"`
	PaidAmount             string `json:"paid_amount" validate:"required,numeric"`
}

// RecordSharePayment records a payment no larger than the line's balance.
func (s *Service) RecordSharePayment(ctx context.Context, req SharePaymentRequest) (models.SharePayment, error) {
	if err := s.check(req); err != nil {
		return models.SharePayment{}, err
	}
	paid, err := positive("paid_amount", req.PaidAmount)
	if err != nil {
		return models.SharePayment{}, err
	}

	line, err := s.backend.ShareUserTransaction(ctx, req.ShareUserTransactionID)
	if err != nil {
		return models.SharePayment{}, fmt.Errorf("load share user transaction %d: %w", req.ShareUserTransactionID, err)
	}
	if err := accounting.CheckDue(paid, line.BalanceAmount.Decimal()); err != nil {
		return models.SharePayment{}, invalid("paid_amount", err.Error())
	}

	payment, err := s.backend.CreateSharePayment(ctx, models.SharePayment{
		ShareUserTransaction: req.ShareUserTransactionID,
		PaidDate:             s.dateOrToday(req.PaidDate),
		PaidAmount:           models.NewAmount(paid),
	})
	if err != nil {
		return models.SharePayment{}, fmt.Errorf("record share payment: %w", err)
	}
	return payment, nil
}
