package accounting

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/messledger/internal/domain/models"
)

// ErrInvalidWeeks means a renewal was requested for less than one week.
var ErrInvalidWeeks = errors.New("renewal must cover at least one week")

// SalesSummary totals a set of orders the way the sales report footer does.
type SalesSummary struct {
	Count       int            `json:"count"`
	Total       models.Amount  `json:"total_amount"`
	CashTotal   models.Amount  `json:"cash_amount"`
	CardTotal   models.Amount  `json:"card_amount"`
	BankOrders  models.Amount  `json:"bank_orders_amount"`
	CreditTotal models.Amount  `json:"credit_amount"`
	ByOrderType map[string]int `json:"by_order_type"`
	ByStatus    map[string]int `json:"by_status"`
	Malformed   int            `json:"malformed_amounts"`
}

// SummarizeSales sums order totals, the cash and bank columns, the bank column
// of bank-paid orders and the totals of credit orders.
func SummarizeSales(orders []models.Order) SalesSummary {
	total, cash, card, bankOrders, credit := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	byType := make(map[string]int)
	byStatus := make(map[string]int)
	malformed := 0

	for _, o := range orders {
		for _, a := range []models.Amount{o.TotalAmount, o.CashAmount, o.BankAmount} {
			if a.Malformed() {
				malformed++
			}
		}
		total = total.Add(o.TotalAmount.Decimal())
		cash = cash.Add(o.CashAmount.Decimal())
		card = card.Add(o.BankAmount.Decimal())
		switch o.PaymentMethod {
		case models.PaymentBank:
			bankOrders = bankOrders.Add(o.BankAmount.Decimal())
		case models.PaymentCredit:
			credit = credit.Add(o.TotalAmount.Decimal())
		}
		if o.OrderType != "" {
			byType[o.OrderType]++
		}
		if o.Status != "" {
			byStatus[o.Status]++
		}
	}

	return SalesSummary{
		Count:       len(orders),
		Total:       models.NewAmount(total),
		CashTotal:   models.NewAmount(cash),
		CardTotal:   models.NewAmount(card),
		BankOrders:  models.NewAmount(bankOrders),
		CreditTotal: models.NewAmount(credit),
		ByOrderType: byType,
		ByStatus:    byStatus,
		Malformed:   malformed,
	}
}

// MessSummary totals mess subscriptions.
type MessSummary struct {
	Count      int           `json:"count"`
	GrandTotal models.Amount `json:"grand_total"`
	CashTotal  models.Amount `json:"cash_amount"`
	BankTotal  models.Amount `json:"bank_amount"`
	Pending    models.Amount `json:"pending_amount"`
}

// PendingAmount is what remains to be paid on a subscription.
func PendingAmount(m models.MessMember) decimal.Decimal {
	return m.GrandTotal.Decimal().Sub(m.PaidAmount.Decimal())
}

// SummarizeMess sums grand totals, cash and bank columns and the pending amounts.
func SummarizeMess(members []models.MessMember) MessSummary {
	grand, cash, bank, pending := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, m := range members {
		grand = grand.Add(m.GrandTotal.Decimal())
		cash = cash.Add(m.CashAmount.Decimal())
		bank = bank.Add(m.BankAmount.Decimal())
		pending = pending.Add(PendingAmount(m))
	}
	return MessSummary{
		Count:      len(members),
		GrandTotal: models.NewAmount(grand),
		CashTotal:  models.NewAmount(cash),
		BankTotal:  models.NewAmount(bank),
		Pending:    models.NewAmount(pending),
	}
}

// RenewalQuote prices a mess renewal.
type RenewalQuote struct {
	WeeklyTotal models.Amount `json:"weekly_total"`
	Weeks       int           `json:"weeks"`
	TotalAmount models.Amount `json:"total_amount"`
	Discount    models.Amount `json:"discount_amount"`
	GrandTotal  models.Amount `json:"grand_total"`
}

// QuoteRenewal multiplies the weekly menu total by the number of weeks and
// subtracts the discount.
func QuoteRenewal(menus []models.Menu, weeks int, discount decimal.Decimal) (RenewalQuote, error) {
	if weeks < 1 {
		return RenewalQuote{}, ErrInvalidWeeks
	}

	weekly := decimal.Zero
	for _, m := range menus {
		weekly = weekly.Add(m.SubTotal.Decimal())
	}
	total := weekly.Mul(decimal.NewFromInt(int64(weeks)))

	return RenewalQuote{
		WeeklyTotal: models.NewAmount(weekly),
		Weeks:       weeks,
		TotalAmount: models.NewAmount(total),
		Discount:    models.NewAmount(discount),
		GrandTotal:  models.NewAmount(total.Sub(discount)),
	}, nil
}
