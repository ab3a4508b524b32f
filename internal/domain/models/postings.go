package models

// Transaction types accepted by the backend's combined transactions endpoint.
const (
	PostingPayIn      = "payin"
	PostingPayOut     = "payout"
	PostingSalesEntry = "salesentry"
)

// TransactionLeg is the write shape of one voucher leg.
type TransactionLeg struct {
	LedgerID      int       `json:"ledger_id"`
	ParticularsID int       `json:"particulars_id"`
	Date          string    `json:"date"`
	DebitAmount   Amount    `json:"debit_amount"`
	CreditAmount  Amount    `json:"credit_amount"`
	Remarks       string    `json:"remarks"`
	RefNo         string    `json:"ref_no,omitempty"`
	DebitCredit   EntrySide `json:"debit_credit"`
}

// PayInOutPosting is the combined two-leg payload. The backend applies both legs
// under one voucher number in a single database transaction.
type PayInOutPosting struct {
	TransactionType string         `json:"transaction_type"`
	Transaction1    TransactionLeg `json:"transaction1"`
	Transaction2    TransactionLeg `json:"transaction2"`
}

// SalesEntryPosting is the six-leg daily sales payload.
type SalesEntryPosting struct {
	TransactionType       string         `json:"transaction_type"`
	SalesCashTransaction1 TransactionLeg `json:"salescashtransaction1"`
	SalesCashTransaction2 TransactionLeg `json:"salescashtransaction2"`
	SalesBankTransaction1 TransactionLeg `json:"salesbanktransaction1"`
	SalesBankTransaction2 TransactionLeg `json:"salesbanktransaction2"`
	PurchaseTransaction1  TransactionLeg `json:"purchasetransaction1"`
	PurchaseTransaction2  TransactionLeg `json:"purchasetransaction2"`
}

// BillRequest creates a bill for an order.
type BillRequest struct {
	OrderID     int    `json:"order_id"`
	TotalAmount Amount `json:"total_amount"`
	Paid        bool   `json:"paid"`
}

// OrderStatusUpdate changes an order's status and records how it was paid.
type OrderStatusUpdate struct {
	Status        string `json:"status"`
	PaymentMethod string `json:"payment_method,omitempty"`
	CashAmount    Amount `json:"cash_amount"`
	BankAmount    Amount `json:"bank_amount"`
}

// ShareUserTransactionUpdate is the PATCH body for a single distribution line.
type ShareUserTransactionUpdate struct {
	Percentage       Amount `json:"percentage"`
	ProfitLose       string `json:"profit_lose"`
	Amount           Amount `json:"amount"`
	PercentageAmount Amount `json:"percentage_amount"`
	ShareUser        int    `json:"share_user"`
	Transaction      int    `json:"transaction"`
}

// MessRenewal is the PUT body that renews a mess subscription for a new period.
type MessRenewal struct {
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	MessTypeID     int    `json:"mess_type_id"`
	TotalAmount    Amount `json:"total_amount"`
	GrandTotal     Amount `json:"grand_total"`
	DiscountAmount Amount `json:"discount_amount"`
	PaidAmount     Amount `json:"paid_amount"`
	PendingAmount  Amount `json:"pending_amount"`
	PaymentMethod  string `json:"payment_method"`
	CashAmount     Amount `json:"cash_amount"`
	BankAmount     Amount `json:"bank_amount"`
	Menus          []int  `json:"menus"`
}
