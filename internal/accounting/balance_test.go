package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/messledger/internal/accounting"
	"github.com/mamadbah2/messledger/internal/domain/models"
)

func txn(ledger, group, debit, credit string) models.Transaction {
	return models.Transaction{
		Ledger:       models.Ledger{Name: ledger, Group: models.Group{Name: group}},
		DebitAmount:  models.ParseAmount(debit),
		CreditAmount: models.ParseAmount(credit),
	}
}

func TestTotals(t *testing.T) {
	tests := []struct {
		name      string
		entries   []models.Transaction
		debit     string
		credit    string
		closing   string
		side      accounting.Side
		malformed int
	}{
		{
			name:    "empty",
			debit:   "0.00",
			credit:  "0.00",
			closing: "0.00",
			side:    accounting.SideCredit,
		},
		{
			name: "malformed amount counts as zero",
			entries: []models.Transaction{
				txn("Cash", "Cash-in-Hand", "100", "0"),
				txn("Cash", "Cash-in-Hand", "0", "40"),
				txn("Cash", "Cash-in-Hand", "abc", "10"),
			},
			debit:     "100.00",
			credit:    "50.00",
			closing:   "50.00",
			side:      accounting.SideDebit,
			malformed: 1,
		},
		{
			name: "credit heavy",
			entries: []models.Transaction{
				txn("Rent", "Expenses", "20.25", ""),
				txn("Rent", "Expenses", "", "70.75"),
			},
			debit:   "20.25",
			credit:  "70.75",
			closing: "50.50",
			side:    accounting.SideCredit,
		},
		{
			name: "equal columns",
			entries: []models.Transaction{
				txn("Bank", "Bank Accounts", "10", "10"),
			},
			debit:   "10.00",
			credit:  "10.00",
			closing: "0.00",
			side:    accounting.SideCredit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.Totals(tt.entries)
			assert.Equal(t, tt.debit, got.TotalDebit.String())
			assert.Equal(t, tt.credit, got.TotalCredit.String())
			assert.Equal(t, tt.closing, got.Closing.String())
			assert.Equal(t, tt.side, got.Side)
			assert.Equal(t, tt.malformed, got.Malformed)
		})
	}
}

func TestBalance_AgainstNature(t *testing.T) {
	debitBalance := accounting.BalanceOf(decimal.NewFromInt(10), decimal.Zero)
	creditBalance := accounting.BalanceOf(decimal.Zero, decimal.NewFromInt(10))
	zero := accounting.BalanceOf(decimal.Zero, decimal.Zero)

	assert.False(t, debitBalance.AgainstNature(models.NatureDebit))
	assert.True(t, debitBalance.AgainstNature(models.NatureCredit))
	assert.True(t, creditBalance.AgainstNature(models.NatureDebit))
	assert.False(t, creditBalance.AgainstNature(""))
	assert.False(t, zero.AgainstNature(models.NatureDebit))
}

func TestRunningTotals(t *testing.T) {
	lines := accounting.RunningTotals([]models.Transaction{
		txn("Cash", "", "100", ""),
		txn("Cash", "", "", "30"),
		txn("Cash", "", "5.5", ""),
	})

	require.Len(t, lines, 3)
	assert.Equal(t, "100.00", lines[0].RunningDebit.String())
	assert.Equal(t, "0.00", lines[0].RunningCredit.String())
	assert.Equal(t, "100.00", lines[1].RunningDebit.String())
	assert.Equal(t, "30.00", lines[1].RunningCredit.String())
	assert.Equal(t, "105.50", lines[2].RunningDebit.String())
}

func TestGroupByLedgerGroup(t *testing.T) {
	groups := accounting.GroupByLedgerGroup([]models.Transaction{
		txn("Cash", "Cash-in-Hand", "100", ""),
		txn("Bank", "Bank Accounts", "", "20"),
		txn("Cash", "Cash-in-Hand", "", "30"),
		txn("Petty", "Cash-in-Hand", "5", ""),
	})

	require.Len(t, groups, 2)
	assert.Equal(t, "Cash-in-Hand", groups[0].Group)
	require.Len(t, groups[0].Ledgers, 2)
	assert.Equal(t, "Cash", groups[0].Ledgers[0].Ledger)
	assert.Equal(t, "70.00", groups[0].Ledgers[0].Balance.String())
	assert.Equal(t, "75.00", groups[0].Total.String())
	assert.Equal(t, "Bank Accounts", groups[1].Group)
	assert.Equal(t, "20.00", groups[1].Total.String())
}

func TestBuildBalanceSheet(t *testing.T) {
	liabilities := []models.Transaction{txn("Capital", "Capital Account", "", "500")}
	assets := []models.Transaction{txn("Cash", "Cash-in-Hand", "650", "")}
	pl := models.ProfitAndLoss{NetProfit: models.ParseAmount("150"), NetLoss: models.ParseAmount("0")}

	sheet := accounting.BuildBalanceSheet(liabilities, assets, pl)

	assert.Equal(t, "650.00", sheet.LiabilitiesTotal.String())
	assert.Equal(t, "650.00", sheet.AssetsTotal.String())
	assert.Equal(t, "150.00", sheet.NetProfit.String())
	assert.Zero(t, sheet.Malformed)
}

func TestBuildIncomeStatement(t *testing.T) {
	expenses := []models.Transaction{
		txn("Rent", "Indirect Expenses", "300", ""),
		txn("Gas", "Direct Expenses", "x", ""),
		txn("Rent", "Indirect Expenses", "200", ""),
	}
	income := []models.Transaction{
		txn("Sales", "Sales Accounts", "", "400"),
	}

	s := accounting.BuildIncomeStatement(expenses, income)

	require.Len(t, s.Expenses, 2)
	assert.Equal(t, "Rent", s.Expenses[0].Ledger)
	assert.Equal(t, "500.00", s.Expenses[0].Amount.String())
	assert.Equal(t, "500.00", s.TotalExpenses.String())
	assert.Equal(t, "400.00", s.TotalIncome.String())
	assert.Equal(t, "0.00", s.NetProfit.String())
	assert.Equal(t, "100.00", s.NetLoss.String())
	assert.Equal(t, s.GrandTotalExpenses.String(), s.GrandTotalIncome.String())
	assert.Equal(t, 1, s.Malformed)

	pl := s.ProfitAndLossOf()
	assert.Equal(t, "100.00", pl.NetLoss.String())
}
