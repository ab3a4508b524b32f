package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/messledger/internal/domain/models"
)

// ShareAmount is percentage% of base, rounded to two decimal places.
func ShareAmount(percentage, base decimal.Decimal) decimal.Decimal {
	return percentage.Mul(base).Div(hundred).Round(2)
}

// ShareLine is one share user's portion of a distribution.
type ShareLine struct {
	ShareUserID      int           `json:"share_user"`
	Name             string        `json:"name"`
	Category         string        `json:"category"`
	ProfitLose       string        `json:"profit_lose"`
	Percentage       models.Amount `json:"percentage"`
	Amount           models.Amount `json:"amount"`
	PercentageAmount models.Amount `json:"percentage_amount"`
}

// Distribution splits a period's profit or loss among share users.
type Distribution struct {
	Status          string        `json:"status"`
	Base            models.Amount `json:"base_amount"`
	Lines           []ShareLine   `json:"lines"`
	TotalAmount     models.Amount `json:"total_amount"`
	TotalPercentage models.Amount `json:"total_percentage"`
	// FullyAllocated is informational; percentages are not required to sum to 100.
	FullyAllocated bool `json:"fully_allocated"`
}

// Distribute gives every user their configured profitlose_share of base.
func Distribute(status string, base decimal.Decimal, users []models.ShareUser) Distribution {
	lines := make([]ShareLine, 0, len(users))
	for _, u := range users {
		lines = append(lines, NewShareLine(u, status, u.ProfitLoseShare.Decimal(), base))
	}
	return Summarize(status, base, lines)
}

// NewShareLine builds a line for a single user with an explicit percentage.
func NewShareLine(user models.ShareUser, status string, percentage, base decimal.Decimal) ShareLine {
	return ShareLine{
		ShareUserID:      user.ID,
		Name:             user.Name,
		Category:         user.Category,
		ProfitLose:       status,
		Percentage:       models.NewAmount(percentage),
		Amount:           models.NewAmount(base),
		PercentageAmount: models.NewAmount(ShareAmount(percentage, base)),
	}
}

// OverrideShare replaces a line's percentage and base and recomputes only that
// line. Other lines of the distribution are not rebalanced.
func OverrideShare(line ShareLine, percentage, base decimal.Decimal) ShareLine {
	line.Percentage = models.NewAmount(percentage)
	line.Amount = models.NewAmount(base)
	line.PercentageAmount = models.NewAmount(ShareAmount(percentage, base))
	return line
}

// Summarize recomputes the distribution totals from its lines. The total
// percentage is rounded to a whole number.
func Summarize(status string, base decimal.Decimal, lines []ShareLine) Distribution {
	totalAmount := decimal.Zero
	for _, l := range lines {
		totalAmount = totalAmount.Add(l.PercentageAmount.Decimal())
	}
	totalPercentage := PercentageTotal(lines).Round(0)

	return Distribution{
		Status:          status,
		Base:            models.NewAmount(base),
		Lines:           lines,
		TotalAmount:     models.NewAmount(totalAmount.Round(2)),
		TotalPercentage: models.NewAmount(totalPercentage),
		FullyAllocated:  totalPercentage.Equal(hundred),
	}
}

// PercentageTotal is the unrounded sum of the lines' percentages.
func PercentageTotal(lines []ShareLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Percentage.Decimal())
	}
	return total
}

// IndividualTotals summarises a single share user's lines across distributions.
type IndividualTotals struct {
	PercentageAmount models.Amount `json:"total_percentage_amount"`
	Balance          models.Amount `json:"total_balance_amount"`
	Paid             models.Amount `json:"total_paid_amount"`
}

// SumIndividual totals a user's share lines. The paid part of a line is
// percentage_amount - balance_amount, except that a line whose balance is
// zero contributes nothing to the paid total.
func SumIndividual(lines []models.IndividualShareTransaction) IndividualTotals {
	shares, balances, paid := decimal.Zero, decimal.Zero, decimal.Zero

	for _, l := range lines {
		shares = shares.Add(l.PercentageAmount.Decimal())
		balances = balances.Add(l.BalanceAmount.Decimal())
		if !l.BalanceAmount.IsZero() {
			paid = paid.Add(l.PercentageAmount.Decimal().Sub(l.BalanceAmount.Decimal()))
		}
	}

	return IndividualTotals{
		PercentageAmount: models.NewAmount(shares),
		Balance:          models.NewAmount(balances),
		Paid:             models.NewAmount(paid),
	}
}
