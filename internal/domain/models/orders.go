package models

import "time"

// Order statuses as used by the backend.
const (
	OrderPending   = "pending"
	OrderApproved  = "approved"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Payment methods shared by orders, mess members and credit payments.
const (
	PaymentCash     = "cash"
	PaymentBank     = "bank"
	PaymentCashBank = "cash-bank"
	PaymentCredit   = "credit"
)

// OrderItem is a dish line on an order.
type OrderItem struct {
	ID       int    `json:"id,omitempty"`
	Dish     int    `json:"dish"`
	Quantity int    `json:"quantity"`
	Price    Amount `json:"price"`
}

// Order is a dining, takeaway or delivery order.
type Order struct {
	ID                  int         `json:"id"`
	Items               []OrderItem `json:"items,omitempty"`
	TotalAmount         Amount      `json:"total_amount"`
	Status              string      `json:"status"`
	OrderType           string      `json:"order_type"`
	PaymentMethod       string      `json:"payment_method"`
	CashAmount          Amount      `json:"cash_amount"`
	BankAmount          Amount      `json:"bank_amount"`
	InvoiceNumber       string      `json:"invoice_number,omitempty"`
	CustomerName        string      `json:"customer_name,omitempty"`
	CustomerPhoneNumber string      `json:"customer_phone_number,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
}

// Bill is issued for a single order and cannot change once the order is cancelled.
type Bill struct {
	ID          int       `json:"id"`
	Order       Order     `json:"order"`
	TotalAmount Amount    `json:"total_amount"`
	Paid        bool      `json:"paid"`
	BilledAt    time.Time `json:"billed_at"`
}

// Floor groups dining tables.
type Floor struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DiningTable is a physical table on a floor.
type DiningTable struct {
	ID         int    `json:"id"`
	TableName  string `json:"table_name"`
	StartTime  string `json:"start_time,omitempty"`
	EndTime    string `json:"end_time,omitempty"`
	SeatsCount int    `json:"seats_count"`
	Capacity   int    `json:"capacity"`
	IsReady    bool   `json:"is_ready"`
}
