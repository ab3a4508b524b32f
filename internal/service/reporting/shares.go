package reporting

import (
	"context"
	"fmt"

	"github.com/mamadbah2/messledger/internal/accounting"
	"github.com/mamadbah2/messledger/internal/domain/models"
)

// ProfitLossShares lists every recorded distribution.
func (s *Service) ProfitLossShares(ctx context.Context) (Listing[models.ProfitLossShareTransaction], error) {
	shares, incomplete, err := collect(ctx, s.logger, "list profit/loss shares", s.backend.ProfitLossShares())
	if err != nil {
		return Listing[models.ProfitLossShareTransaction]{}, fmt.Errorf("load profit/loss shares: %w", err)
	}
	return listing(shares, incomplete), nil
}

// IndividualShareReport is one share user's lines with their totals.
type IndividualShareReport struct {
	ShareUserID int                                 `json:"share_user"`
	Lines       []models.IndividualShareTransaction `json:"lines"`
	Totals      accounting.IndividualTotals         `json:"totals"`
}

// IndividualShareReport totals the distribution lines of one share user.
func (s *Service) IndividualShareReport(ctx context.Context, shareUserID int) (IndividualShareReport, error) {
	lines, err := s.backend.ShareUserTransactions(ctx, shareUserID)
	if err != nil {
		return IndividualShareReport{}, fmt.Errorf("load share user %d transactions: %w", shareUserID, err)
	}
	return IndividualShareReport{
		ShareUserID: shareUserID,
		Lines:       lines,
		Totals:      accounting.SumIndividual(lines),
	}, nil
}
