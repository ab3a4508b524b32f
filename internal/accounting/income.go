package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/messledger/internal/domain/models"
)

// LedgerAmount is a single-column line of a statement.
type LedgerAmount struct {
	Ledger string        `json:"ledger"`
	Amount models.Amount `json:"amount"`
}

// IncomeStatement is the trading account for a period.
type IncomeStatement struct {
	Expenses           []LedgerAmount `json:"expenses"`
	Income             []LedgerAmount `json:"income"`
	TotalExpenses      models.Amount  `json:"total_expenses"`
	TotalIncome        models.Amount  `json:"total_income"`
	NetProfit          models.Amount  `json:"net_profit"`
	NetLoss            models.Amount  `json:"net_loss"`
	GrandTotalExpenses models.Amount  `json:"grand_total_expenses"`
	GrandTotalIncome   models.Amount  `json:"grand_total_income"`
	Malformed          int            `json:"malformed_amounts"`
}

// BuildIncomeStatement sums expense debits and income credits. The surplus side
// is closed with net profit (on the expense side) or net loss (on the income
// side) so that both grand totals agree.
func BuildIncomeStatement(expenses, income []models.Transaction) IncomeStatement {
	expenseLines, totalExpenses, badExpenses := perLedger(expenses, func(t models.Transaction) models.Amount { return t.DebitAmount })
	incomeLines, totalIncome, badIncome := perLedger(income, func(t models.Transaction) models.Amount { return t.CreditAmount })

	netProfit, netLoss := decimal.Zero, decimal.Zero
	if totalIncome.GreaterThan(totalExpenses) {
		netProfit = totalIncome.Sub(totalExpenses)
	}
	if totalExpenses.GreaterThan(totalIncome) {
		netLoss = totalExpenses.Sub(totalIncome)
	}

	return IncomeStatement{
		Expenses:           expenseLines,
		Income:             incomeLines,
		TotalExpenses:      models.NewAmount(totalExpenses),
		TotalIncome:        models.NewAmount(totalIncome),
		NetProfit:          models.NewAmount(netProfit),
		NetLoss:            models.NewAmount(netLoss),
		GrandTotalExpenses: models.NewAmount(totalExpenses.Add(netProfit)),
		GrandTotalIncome:   models.NewAmount(totalIncome.Add(netLoss)),
		Malformed:          badExpenses + badIncome,
	}
}

// ProfitAndLossOf condenses a statement into the backend's profit-and-loss shape.
func (s IncomeStatement) ProfitAndLossOf() models.ProfitAndLoss {
	return models.ProfitAndLoss{
		TotalExpense: s.TotalExpenses,
		TotalIncome:  s.TotalIncome,
		NetProfit:    s.NetProfit,
		NetLoss:      s.NetLoss,
	}
}

func perLedger(transactions []models.Transaction, column func(models.Transaction) models.Amount) ([]LedgerAmount, decimal.Decimal, int) {
	var order []string
	sums := make(map[string]decimal.Decimal)
	total := decimal.Zero
	malformed := 0

	for _, txn := range transactions {
		amount := column(txn)
		if amount.Malformed() {
			malformed++
		}
		name := txn.Ledger.Name
		if _, ok := sums[name]; !ok {
			order = append(order, name)
		}
		sums[name] = sums[name].Add(amount.Decimal())
		total = total.Add(amount.Decimal())
	}

	lines := make([]LedgerAmount, 0, len(order))
	for _, name := range order {
		lines = append(lines, LedgerAmount{Ledger: name, Amount: models.NewAmount(sums[name])})
	}
	return lines, total, malformed
}
