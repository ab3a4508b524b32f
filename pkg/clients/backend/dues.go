package backend

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mamadbah2/messledger/internal/domain/models"
)

// CreditUsers lists customers with a credit account.
func (c *Client) CreditUsers(opts ...PagerOption) *Pager[models.CreditUser] {
	return paged[models.CreditUser](c, "list credit users", "/credit-users/", nil, opts...)
}

// CreditTransactions lists the payments of one credit user.
func (c *Client) CreditTransactions(creditUserID int, opts ...PagerOption) *Pager[models.CreditTransaction] {
	query := Query{"credit_user": strconv.Itoa(creditUserID)}
	return paged[models.CreditTransaction](c, "list credit transactions", "/credit-transactions/", query, opts...)
}

// CreateCreditTransaction records a payment against a credit user's dues.
func (c *Client) CreateCreditTransaction(ctx context.Context, txn models.CreditTransaction) (models.CreditTransaction, error) {
	const op = "create credit transaction"
	body, err := c.send(ctx, op, http.MethodPost, "/credit-transactions/", txn)
	if err != nil {
		return models.CreditTransaction{}, err
	}
	return decodeObject[models.CreditTransaction](op, body)
}

// MessMembers lists mess subscriptions.
func (c *Client) MessMembers(query Query, opts ...PagerOption) *Pager[models.MessMember] {
	return paged[models.MessMember](c, "list mess members", "/messes/", query, opts...)
}

// MessMember fetches one subscription.
func (c *Client) MessMember(ctx context.Context, id int) (models.MessMember, error) {
	const op = "get mess member"
	body, err := c.get(ctx, op, idPath("/messes/%s/", id), nil)
	if err != nil {
		return models.MessMember{}, err
	}
	return decodeObject[models.MessMember](op, body)
}

// RenewMess replaces a subscription's period and amounts.
func (c *Client) RenewMess(ctx context.Context, id int, renewal models.MessRenewal) (models.MessMember, error) {
	const op = "renew mess"
	body, err := c.send(ctx, op, http.MethodPut, idPath("/messes/%s/", id), renewal)
	if err != nil {
		return models.MessMember{}, err
	}
	return decodeObject[models.MessMember](op, body)
}

// MessTransactions lists the payments of one subscription.
func (c *Client) MessTransactions(messID int, opts ...PagerOption) *Pager[models.MessTransaction] {
	query := Query{"mess_id": strconv.Itoa(messID)}
	return paged[models.MessTransaction](c, "list mess transactions", "/mess-transactions/", query, opts...)
}

// Menus lists the weekly menus of a mess type.
func (c *Client) Menus(messTypeID int, opts ...PagerOption) *Pager[models.Menu] {
	query := Query{"mess_type": strconv.Itoa(messTypeID)}
	return paged[models.Menu](c, "list menus", "/menus/", query, opts...)
}

// CreditUser fetches one credit customer.
func (c *Client) CreditUser(ctx context.Context, id int) (models.CreditUser, error) {
	const op = "get credit user"
	body, err := c.get(ctx, op, idPath("/credit-users/%s/", id), nil)
	if err != nil {
		return models.CreditUser{}, err
	}
	return decodeObject[models.CreditUser](op, body)
}
