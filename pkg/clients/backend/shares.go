package backend

import (
	"context"
	"net/http"

	"github.com/mamadbah2/messledger/internal/domain/models"
)

// ShareUsers lists partners and managers entitled to a share.
func (c *Client) ShareUsers(opts ...PagerOption) *Pager[models.ShareUser] {
	return paged[models.ShareUser](c, "list share users", "/share-user-management/", nil, opts...)
}

// ShareUserTransactions returns every distribution line of one share user.
func (c *Client) ShareUserTransactions(ctx context.Context, shareUserID int) ([]models.IndividualShareTransaction, error) {
	const op = "list share user transactions"
	body, err := c.get(ctx, op, idPath("/share-user-management/%s/transactions/", shareUserID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.IndividualShareTransaction](op, body)
}

// ShareUserTransaction fetches one distribution line.
func (c *Client) ShareUserTransaction(ctx context.Context, id int) (models.ShareUserTransaction, error) {
	const op = "get share user transaction"
	body, err := c.get(ctx, op, idPath("/share-user-transactions/%s/", id), nil)
	if err != nil {
		return models.ShareUserTransaction{}, err
	}
	return decodeObject[models.ShareUserTransaction](op, body)
}

// UpdateShareUserTransaction patches one distribution line.
func (c *Client) UpdateShareUserTransaction(ctx context.Context, id int, update models.ShareUserTransactionUpdate) (models.ShareUserTransaction, error) {
	const op = "update share user transaction"
	body, err := c.send(ctx, op, http.MethodPatch, idPath("/share-user-transactions/%s/", id), update)
	if err != nil {
		return models.ShareUserTransaction{}, err
	}
	return decodeObject[models.ShareUserTransaction](op, body)
}

// ProfitLossShares lists the recorded distributions.
func (c *Client) ProfitLossShares(opts ...PagerOption) *Pager[models.ProfitLossShareTransaction] {
	return paged[models.ProfitLossShareTransaction](c, "list profit/loss shares", "/profit-loss-share-transactions/", nil, opts...)
}

// CreateProfitLossShare records a distribution with all of its lines.
func (c *Client) CreateProfitLossShare(ctx context.Context, txn models.ProfitLossShareTransaction) (models.ProfitLossShareTransaction, error) {
	const op = "create profit/loss share"
	body, err := c.send(ctx, op, http.MethodPost, "/profit-loss-share-transactions/", txn)
	if err != nil {
		return models.ProfitLossShareTransaction{}, err
	}
	return decodeObject[models.ProfitLossShareTransaction](op, body)
}

// CreateSharePayment records money paid out against a distribution line.
func (c *Client) CreateSharePayment(ctx context.Context, payment models.SharePayment) (models.SharePayment, error) {
	const op = "create share payment"
	body, err := c.send(ctx, op, http.MethodPost, "/share-payment-history/", payment)
	if err != nil {
		return models.SharePayment{}, err
	}
	return decodeObject[models.SharePayment](op, body)
}

// SharePayments lists the payments made against one distribution line.
func (c *Client) SharePayments(ctx context.Context, shareUserTransactionID int) ([]models.SharePayment, error) {
	const op = "list share payments"
	body, err := c.get(ctx, op, idPath("/share-payment-history/by-transaction/%s/", shareUserTransactionID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.SharePayment](op, body)
}
