package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/messledger/internal/domain/models"
)

// LedgerTotal is a ledger's accumulated columns inside a group.
type LedgerTotal struct {
	Ledger  string        `json:"ledger"`
	Debit   models.Amount `json:"debit"`
	Credit  models.Amount `json:"credit"`
	Balance models.Amount `json:"balance"`
}

// GroupTotal is a main group with its ledgers and the sum of their balances.
type GroupTotal struct {
	Group   string        `json:"group"`
	Ledgers []LedgerTotal `json:"ledgers"`
	Total   models.Amount `json:"total"`
}

type ledgerAcc struct {
	name          string
	debit, credit decimal.Decimal
}

type groupAcc struct {
	name    string
	order   []string
	ledgers map[string]*ledgerAcc
}

// GroupByLedgerGroup groups transactions by ledger.group.name and then by
// ledger name. Groups and ledgers keep the order of their first occurrence.
// Each ledger balance is |debit - credit|, the group total is the sum of them.
func GroupByLedgerGroup(transactions []models.Transaction) []GroupTotal {
	var order []string
	groups := make(map[string]*groupAcc)

	for _, txn := range transactions {
		groupName := txn.Ledger.Group.Name
		g, ok := groups[groupName]
		if !ok {
			g = &groupAcc{name: groupName, ledgers: make(map[string]*ledgerAcc)}
			groups[groupName] = g
			order = append(order, groupName)
		}

		l, ok := g.ledgers[txn.Ledger.Name]
		if !ok {
			l = &ledgerAcc{name: txn.Ledger.Name}
			g.ledgers[txn.Ledger.Name] = l
			g.order = append(g.order, txn.Ledger.Name)
		}
		l.debit = l.debit.Add(txn.DebitAmount.Decimal())
		l.credit = l.credit.Add(txn.CreditAmount.Decimal())
	}

	result := make([]GroupTotal, 0, len(order))
	for _, name := range order {
		g := groups[name]
		total := decimal.Zero
		lines := make([]LedgerTotal, 0, len(g.order))
		for _, ledgerName := range g.order {
			l := g.ledgers[ledgerName]
			balance := l.debit.Sub(l.credit).Abs()
			total = total.Add(balance)
			lines = append(lines, LedgerTotal{
				Ledger:  l.name,
				Debit:   models.NewAmount(l.debit),
				Credit:  models.NewAmount(l.credit),
				Balance: models.NewAmount(balance),
			})
		}
		result = append(result, GroupTotal{Group: g.name, Ledgers: lines, Total: models.NewAmount(total)})
	}

	return result
}

// BalanceSheet puts liabilities (plus net profit) against assets (plus net loss).
type BalanceSheet struct {
	Liabilities      []GroupTotal  `json:"liabilities"`
	Assets           []GroupTotal  `json:"assets"`
	NetProfit        models.Amount `json:"net_profit"`
	NetLoss          models.Amount `json:"net_loss"`
	LiabilitiesTotal models.Amount `json:"liabilities_total"`
	AssetsTotal      models.Amount `json:"assets_total"`
	Malformed        int           `json:"malformed_amounts"`
}

// BuildBalanceSheet groups both sides and closes them with the period's result:
// net profit is carried on the liabilities side, net loss on the assets side.
func BuildBalanceSheet(liabilities, assets []models.Transaction, pl models.ProfitAndLoss) BalanceSheet {
	sheet := BalanceSheet{
		Liabilities: GroupByLedgerGroup(liabilities),
		Assets:      GroupByLedgerGroup(assets),
		NetProfit:   models.NewAmount(pl.NetProfit.Decimal()),
		NetLoss:     models.NewAmount(pl.NetLoss.Decimal()),
		Malformed:   Totals(liabilities).Malformed + Totals(assets).Malformed,
	}

	liabilitiesTotal := pl.NetProfit.Decimal()
	for _, g := range sheet.Liabilities {
		liabilitiesTotal = liabilitiesTotal.Add(g.Total.Decimal())
	}
	assetsTotal := pl.NetLoss.Decimal()
	for _, g := range sheet.Assets {
		assetsTotal = assetsTotal.Add(g.Total.Decimal())
	}

	sheet.LiabilitiesTotal = models.NewAmount(liabilitiesTotal)
	sheet.AssetsTotal = models.NewAmount(assetsTotal)
	return sheet
}
