package backend

import (
	"context"
	"net/http"
	"time"

	"github.com/mamadbah2/messledger/internal/domain/models"
)

// Ledgers lists the chart of accounts.
func (c *Client) Ledgers(query Query, opts ...PagerOption) *Pager[models.Ledger] {
	return paged[models.Ledger](c, "list ledgers", "/ledgers/", query, opts...)
}

// LedgerReport lists the transactions of one ledger (by id or name) within the
// date range. The backend answers with a bare array or with pages.
func (c *Client) LedgerReport(ledger string, from, to time.Time, opts ...PagerOption) *Pager[models.Transaction] {
	query := Query{"ledger": ledger}.DateRange(from, to)
	return paged[models.Transaction](c, "ledger report", "/transactions/ledger_report/", query, opts...)
}

// TransactionsByNatureGroup returns every transaction whose ledger belongs to
// the nature group. The backend needs both dates and returns an empty list
// otherwise.
func (c *Client) TransactionsByNatureGroup(ctx context.Context, nature string, from, to time.Time) ([]models.Transaction, error) {
	const op = "filter transactions by nature group"
	query := Query{"nature_group_name": nature}.DateRange(from, to)
	body, err := c.get(ctx, op, "/transactions/filter-by-nature-group/", query)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Transaction](op, body)
}

// ProfitAndLoss returns the backend's own profit and loss totals for the range.
func (c *Client) ProfitAndLoss(ctx context.Context, from, to time.Time) (models.ProfitAndLoss, error) {
	const op = "profit and loss"
	body, err := c.get(ctx, op, "/transactions/profit-and-loss/", Query{}.DateRange(from, to))
	if err != nil {
		return models.ProfitAndLoss{}, err
	}
	return decodeObject[models.ProfitAndLoss](op, body)
}

// PostPayInOut submits both legs of a pay-in or pay-out voucher in one request.
func (c *Client) PostPayInOut(ctx context.Context, posting models.PayInOutPosting) ([]models.Transaction, error) {
	const op = "post pay in/out"
	body, err := c.send(ctx, op, http.MethodPost, "/transactions/", posting)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Transaction](op, body)
}

// PostSalesEntry submits the six legs of a daily sales entry in one request.
func (c *Client) PostSalesEntry(ctx context.Context, posting models.SalesEntryPosting) ([]models.Transaction, error) {
	const op = "post sales entry"
	body, err := c.send(ctx, op, http.MethodPost, "/transactions/", posting)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Transaction](op, body)
}

// CashSheets lists cash count sheets, optionally restricted to a date range.
func (c *Client) CashSheets(from, to time.Time, opts ...PagerOption) *Pager[models.CashCountSheet] {
	return paged[models.CashCountSheet](c, "list cash sheets", "/cashsheet/", Query{}.DateRange(from, to), opts...)
}

// CreateCashSheets stores one or more cash count sheets.
func (c *Client) CreateCashSheets(ctx context.Context, sheets ...models.CashCountSheet) ([]models.CashCountSheet, error) {
	const op = "create cash sheets"
	body, err := c.send(ctx, op, http.MethodPost, "/cashsheet/", map[string]any{"entries": sheets})
	if err != nil {
		return nil, err
	}
	return decodeList[models.CashCountSheet](op, body)
}
