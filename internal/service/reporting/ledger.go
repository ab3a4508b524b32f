package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/messledger/internal/accounting"
	"github.com/mamadbah2/messledger/internal/domain/models"
)

// LedgerReport is one ledger's statement for a period.
type LedgerReport struct {
	Ledger        string                  `json:"ledger"`
	From          string                  `json:"from_date,omitempty"`
	To            string                  `json:"to_date,omitempty"`
	Lines         []accounting.LedgerLine `json:"lines"`
	Balance       accounting.Balance      `json:"balance"`
	AgainstNature bool                    `json:"against_nature"`
	Incomplete    bool                    `json:"incomplete"`
}

// LedgerReport fetches a ledger's transactions and totals them.
func (s *Service) LedgerReport(ctx context.Context, ledger string, from, to time.Time) (LedgerReport, error) {
	txns, incomplete, err := collect(ctx, s.logger, "ledger report", s.backend.LedgerReport(ledger, from, to))
	if err != nil {
		return LedgerReport{}, fmt.Errorf("load ledger %s: %w", ledger, err)
	}

	report := LedgerReport{
		Ledger:     ledger,
		From:       formatDate(from),
		To:         formatDate(to),
		Lines:      accounting.RunningTotals(txns),
		Balance:    accounting.Totals(txns),
		Incomplete: incomplete,
	}
	if len(txns) > 0 {
		report.AgainstNature = report.Balance.AgainstNature(txns[0].Ledger.Nature())
	}
	if report.Balance.Malformed > 0 {
		s.logger.Warn("ledger report contains malformed amounts", zap.String("ledger", ledger), zap.Int("count", report.Balance.Malformed))
	}

	return report, nil
}

// Ledgers returns the whole chart of accounts.
func (s *Service) Ledgers(ctx context.Context) (Listing[models.Ledger], error) {
	ledgers, incomplete, err := collect(ctx, s.logger, "list ledgers", s.backend.Ledgers(nil))
	if err != nil {
		return Listing[models.Ledger]{}, fmt.Errorf("load ledgers: %w", err)
	}
	return listing(ledgers, incomplete), nil
}

// DayBook aggregates the cash count sheets of a period.
func (s *Service) DayBook(ctx context.Context, from, to time.Time) (accounting.DayBook, error) {
	sheets, incomplete, err := collect(ctx, s.logger, "list cash sheets", s.backend.CashSheets(from, to))
	if err != nil {
		return accounting.DayBook{}, fmt.Errorf("load cash sheets: %w", err)
	}
	if incomplete {
		s.logger.Warn("day book built from a partial list of cash sheets")
	}
	return accounting.BuildDayBook(sheets, from, to), nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
