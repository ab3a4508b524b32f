package backend

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mamadbah2/messledger/internal/domain/models"
)

// SalesFilter narrows the sales report. Zero values are not sent.
type SalesFilter struct {
	Query
	OrderType     string
	PaymentMethod string
	OrderStatus   string
}

func (f SalesFilter) query() Query {
	q := Query{}
	for k, v := range f.Query {
		q[k] = v
	}
	q["order_type"] = f.OrderType
	q["payment_method"] = f.PaymentMethod
	q["order_status"] = f.OrderStatus
	return q
}

// Orders lists orders.
func (c *Client) Orders(query Query, opts ...PagerOption) *Pager[models.Order] {
	return paged[models.Order](c, "list orders", "/orders/", query, opts...)
}

// SalesReport returns the orders matching the filter as a single list.
func (c *Client) SalesReport(ctx context.Context, filter SalesFilter) ([]models.Order, error) {
	const op = "sales report"
	body, err := c.get(ctx, op, "/orders/sales_report/", filter.query())
	if err != nil {
		return nil, err
	}
	return decodeList[models.Order](op, body)
}

// Order fetches one order.
func (c *Client) Order(ctx context.Context, id int) (models.Order, error) {
	const op = "get order"
	body, err := c.get(ctx, op, idPath("/orders/%s/", id), nil)
	if err != nil {
		return models.Order{}, err
	}
	return decodeObject[models.Order](op, body)
}

// UpdateOrderStatus changes an order's status and payment columns.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int, update models.OrderStatusUpdate) (models.Order, error) {
	const op = "update order status"
	body, err := c.send(ctx, op, http.MethodPatch, idPath("/orders/%s/", orderID), update)
	if err != nil {
		return models.Order{}, err
	}
	return decodeObject[models.Order](op, body)
}

// Bills lists bills.
func (c *Client) Bills(query Query, opts ...PagerOption) *Pager[models.Bill] {
	return paged[models.Bill](c, "list bills", "/bills/", query, opts...)
}

// CreateBill issues a bill for an order.
func (c *Client) CreateBill(ctx context.Context, req models.BillRequest) (models.Bill, error) {
	const op = "create bill"
	body, err := c.send(ctx, op, http.MethodPost, "/bills/", req)
	if err != nil {
		return models.Bill{}, err
	}
	return decodeObject[models.Bill](op, body)
}

// CancelBill cancels the order behind a bill.
func (c *Client) CancelBill(ctx context.Context, billID int) error {
	_, err := c.send(ctx, "cancel bill", http.MethodPost, idPath("/bills/%s/cancel_order/", billID), nil)
	return err
}

// Floors lists the restaurant floors. The backend returns a bare array.
func (c *Client) Floors(ctx context.Context) ([]models.Floor, error) {
	const op = "list floors"
	body, err := c.get(ctx, op, "/floors/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Floor](op, body)
}

// Tables lists the dining tables of a floor.
func (c *Client) Tables(floorID int, opts ...PagerOption) *Pager[models.DiningTable] {
	return paged[models.DiningTable](c, "list tables", "/tables/", Query{"floor": strconv.Itoa(floorID)}, opts...)
}
