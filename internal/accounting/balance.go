// Package accounting holds the arithmetic shared by every report: debit/credit
// totals, grouped ledger balances, income statements, profit/loss share
// distribution, cash denomination counts and sales summaries. Nothing here
// performs I/O.
package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/messledger/internal/domain/models"
)

var hundred = decimal.NewFromInt(100)

// Side names the column a closing balance is carried on.
type Side string

const (
	SideDebit  Side = "Debit"
	SideCredit Side = "Credit"
)

// Entry is anything carrying a debit and a credit amount.
type Entry interface {
	Debit() models.Amount
	Credit() models.Amount
}

// Balance is the result of summing the debit and credit columns.
type Balance struct {
	TotalDebit  models.Amount `json:"total_debit"`
	TotalCredit models.Amount `json:"total_credit"`
	Closing     models.Amount `json:"closing_balance"`
	Side        Side          `json:"balance_side"`
	// Malformed counts amounts that could not be parsed and were taken as zero.
	Malformed int `json:"malformed_amounts"`
}

// Totals sums debit and credit over entries. Missing or unparseable amounts
// contribute zero and are counted in Malformed.
func Totals[E Entry](entries []E) Balance {
	debit, credit := decimal.Zero, decimal.Zero
	malformed := 0

	for _, entry := range entries {
		d, c := entry.Debit(), entry.Credit()
		if d.Malformed() {
			malformed++
		}
		if c.Malformed() {
			malformed++
		}
		debit = debit.Add(d.Decimal())
		credit = credit.Add(c.Decimal())
	}

	balance := BalanceOf(debit, credit)
	balance.Malformed = malformed
	return balance
}

// BalanceOf derives the closing balance |debit - credit| and its side. Equal
// columns are reported on the credit side with a zero balance.
func BalanceOf(debit, credit decimal.Decimal) Balance {
	side := SideCredit
	if debit.GreaterThan(credit) {
		side = SideDebit
	}

	return Balance{
		TotalDebit:  models.NewAmount(debit),
		TotalCredit: models.NewAmount(credit),
		Closing:     models.NewAmount(debit.Sub(credit).Abs()),
		Side:        side,
	}
}

// AgainstNature reports whether a non-zero balance sits on the opposite side of
// the ledger's normal nature, e.g. a credit balance on a debit-nature ledger.
// An unknown nature never disagrees.
func (b Balance) AgainstNature(nature models.LedgerNature) bool {
	if b.Closing.IsZero() {
		return false
	}
	switch nature {
	case models.NatureDebit:
		return b.Side != SideDebit
	case models.NatureCredit:
		return b.Side != SideCredit
	default:
		return false
	}
}

// LedgerLine is a ledger report row with cumulative column totals.
type LedgerLine struct {
	models.Transaction
	RunningDebit  models.Amount `json:"running_debit"`
	RunningCredit models.Amount `json:"running_credit"`
}

// RunningTotals annotates each transaction with the debit and credit totals
// accumulated up to and including it, in the order given.
func RunningTotals(transactions []models.Transaction) []LedgerLine {
	lines := make([]LedgerLine, 0, len(transactions))
	debit, credit := decimal.Zero, decimal.Zero

	for _, txn := range transactions {
		debit = debit.Add(txn.DebitAmount.Decimal())
		credit = credit.Add(txn.CreditAmount.Decimal())
		lines = append(lines, LedgerLine{
			Transaction:   txn,
			RunningDebit:  models.NewAmount(debit),
			RunningCredit: models.NewAmount(credit),
		})
	}

	return lines
}

