package reporting

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/messledger/internal/accounting"
	"github.com/mamadbah2/messledger/internal/domain/models"
)

// IncomeStatementReport wraps the statement with the sections that could not be loaded.
type IncomeStatementReport struct {
	accounting.IncomeStatement
	From     string   `json:"from_date"`
	To       string   `json:"to_date"`
	Warnings []string `json:"warnings,omitempty"`
}

// BalanceSheetReport wraps the balance sheet with the sections that could not be loaded.
type BalanceSheetReport struct {
	accounting.BalanceSheet
	From     string   `json:"from_date"`
	To       string   `json:"to_date"`
	Warnings []string `json:"warnings,omitempty"`
}

// sections loads several parts of a report concurrently. A part that fails is
// left empty and noted as a warning; only when every part fails is an error
// returned.
type sections struct {
	mu       sync.Mutex
	group    errgroup.Group
	logger   *zap.Logger
	warnings []string
	errs     []error
	parts    int
}

func (p *sections) load(name string, fn func() error) {
	p.parts++
	p.group.Go(func() error {
		if err := fn(); err != nil {
			p.logger.Warn("report section unavailable", zap.String("section", name), zap.Error(err))
			p.mu.Lock()
			p.warnings = append(p.warnings, fmt.Sprintf("%s unavailable", name))
			p.errs = append(p.errs, err)
			p.mu.Unlock()
		}
		return nil
	})
}

func (p *sections) wait() ([]string, error) {
	_ = p.group.Wait()
	if p.parts > 0 && len(p.errs) == p.parts {
		return nil, errors.Join(p.errs...)
	}
	return p.warnings, nil
}

// IncomeStatement builds the trading account from the expense and income
// nature groups.
func (s *Service) IncomeStatement(ctx context.Context, from, to time.Time) (IncomeStatementReport, error) {
	var expenses, income []models.Transaction
	parts := &sections{logger: s.logger}

	parts.load("expenses", func() (err error) {
		expenses, err = s.backend.TransactionsByNatureGroup(ctx, models.NatureExpense, from, to)
		return err
	})
	parts.load("income", func() (err error) {
		income, err = s.backend.TransactionsByNatureGroup(ctx, models.NatureIncome, from, to)
		return err
	})

	warnings, err := parts.wait()
	if err != nil {
		return IncomeStatementReport{}, fmt.Errorf("load income statement: %w", err)
	}

	return IncomeStatementReport{
		IncomeStatement: accounting.BuildIncomeStatement(expenses, income),
		From:            formatDate(from),
		To:              formatDate(to),
		Warnings:        warnings,
	}, nil
}

// BalanceSheet builds liabilities against assets, closed with the backend's
// profit and loss for the period.
func (s *Service) BalanceSheet(ctx context.Context, from, to time.Time) (BalanceSheetReport, error) {
	var liabilities, assets []models.Transaction
	var pl models.ProfitAndLoss
	parts := &sections{logger: s.logger}

	parts.load("liabilities", func() (err error) {
		liabilities, err = s.backend.TransactionsByNatureGroup(ctx, models.NatureLiability, from, to)
		return err
	})
	parts.load("assets", func() (err error) {
		assets, err = s.backend.TransactionsByNatureGroup(ctx, models.NatureAsset, from, to)
		return err
	})
	parts.load("profit and loss", func() (err error) {
		pl, err = s.backend.ProfitAndLoss(ctx, from, to)
		return err
	})

	warnings, err := parts.wait()
	if err != nil {
		return BalanceSheetReport{}, fmt.Errorf("load balance sheet: %w", err)
	}

	return BalanceSheetReport{
		BalanceSheet: accounting.BuildBalanceSheet(liabilities, assets, pl),
		From:         formatDate(from),
		To:           formatDate(to),
		Warnings:     warnings,
	}, nil
}
