package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/messledger/internal/accounting"
	"github.com/mamadbah2/messledger/internal/domain/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestShareAmount(t *testing.T) {
	assert.Equal(t, "250.00", accounting.ShareAmount(dec("25"), dec("1000")).StringFixed(2))
	assert.Equal(t, "33.33", accounting.ShareAmount(dec("33.333"), dec("100")).StringFixed(2))
	assert.Equal(t, "0.00", accounting.ShareAmount(dec("0"), dec("1000")).StringFixed(2))
}

func TestDistribute(t *testing.T) {
	users := []models.ShareUser{
		{ID: 1, Name: "Anil", Category: "partner", ProfitLoseShare: models.ParseAmount("60")},
		{ID: 2, Name: "Binu", Category: "partner", ProfitLoseShare: models.ParseAmount("33.4")},
		{ID: 3, Name: "Chitra", Category: "manager", ProfitLoseShare: models.ParseAmount("6.6")},
	}

	d := accounting.Distribute(models.ShareProfit, dec("1000"), users)

	require.Len(t, d.Lines, 3)
	assert.Equal(t, "600.00", d.Lines[0].PercentageAmount.String())
	assert.Equal(t, "334.00", d.Lines[1].PercentageAmount.String())
	assert.Equal(t, "66.00", d.Lines[2].PercentageAmount.String())
	assert.Equal(t, "1000.00", d.Lines[2].Amount.String())
	assert.Equal(t, "1000.00", d.TotalAmount.String())
	assert.Equal(t, "100.00", d.TotalPercentage.String())
	assert.True(t, d.FullyAllocated)
	assert.Equal(t, models.ShareProfit, d.Lines[0].ProfitLose)
}

func TestDistribute_PartialAllocation(t *testing.T) {
	users := []models.ShareUser{
		{ID: 1, Name: "Anil", ProfitLoseShare: models.ParseAmount("40.4")},
	}

	d := accounting.Distribute(models.ShareLoss, dec("500"), users)

	assert.Equal(t, "202.00", d.TotalAmount.String())
	assert.Equal(t, "40.00", d.TotalPercentage.String())
	assert.False(t, d.FullyAllocated)
}

func TestOverrideShare_OnlyTouchesOneLine(t *testing.T) {
	users := []models.ShareUser{
		{ID: 1, Name: "Anil", ProfitLoseShare: models.ParseAmount("50")},
		{ID: 2, Name: "Binu", ProfitLoseShare: models.ParseAmount("50")},
	}
	d := accounting.Distribute(models.ShareProfit, dec("1000"), users)

	d.Lines[0] = accounting.OverrideShare(d.Lines[0], dec("70"), dec("1000"))
	d = accounting.Summarize(d.Status, d.Base.Decimal(), d.Lines)

	assert.Equal(t, "700.00", d.Lines[0].PercentageAmount.String())
	assert.Equal(t, "500.00", d.Lines[1].PercentageAmount.String())
	assert.Equal(t, "1200.00", d.TotalAmount.String())
	assert.Equal(t, "120.00", d.TotalPercentage.String())
	assert.Equal(t, "120", accounting.PercentageTotal(d.Lines).String())
}

func TestSumIndividual(t *testing.T) {
	lines := []models.IndividualShareTransaction{
		{PercentageAmount: models.ParseAmount("250"), BalanceAmount: models.ParseAmount("100")},
		{PercentageAmount: models.ParseAmount("300"), BalanceAmount: models.ParseAmount("0")},
		{PercentageAmount: models.ParseAmount("50"), BalanceAmount: models.ParseAmount("50")},
	}

	totals := accounting.SumIndividual(lines)

	assert.Equal(t, "600.00", totals.PercentageAmount.String())
	assert.Equal(t, "150.00", totals.Balance.String())
	// a settled line (zero balance) is not counted as paid
	assert.Equal(t, "150.00", totals.Paid.String())
}
