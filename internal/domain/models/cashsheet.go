package models

// Cash sheet transaction types.
const (
	CashPayIn  = "payin"
	CashPayOut = "payout"
)

// CashCountItem is the count of one denomination.
type CashCountItem struct {
	ID          int    `json:"id,omitempty"`
	CreatedDate string `json:"created_date,omitempty"`
	Currency    int    `json:"currency"`
	Nos         int    `json:"nos"`
	Amount      Amount `json:"amount"`
}

// CashCountSheet is a physical cash count attached to a pay-in or pay-out voucher.
type CashCountSheet struct {
	ID              int             `json:"id,omitempty"`
	CreatedDate     string          `json:"created_date"`
	VoucherNumber   *int            `json:"voucher_number"`
	Amount          Amount          `json:"amount"`
	TransactionType string          `json:"transaction_type"`
	Items           []CashCountItem `json:"items"`
}
