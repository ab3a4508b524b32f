package models

// CreditUser is a customer allowed to run a tab.
type CreditUser struct {
	ID              int    `json:"id"`
	Username        string `json:"username"`
	MobileNumber    string `json:"mobile_number"`
	LastPaymentDate string `json:"last_payment_date,omitempty"`
	TotalDue        Amount `json:"total_due"`
	IsActive        bool   `json:"is_active"`
}

// CreditTransaction is a payment received against a credit user's dues.
type CreditTransaction struct {
	ID             int    `json:"id,omitempty"`
	CreditUser     int    `json:"credit_user"`
	ReceivedAmount Amount `json:"received_amount"`
	CashAmount     Amount `json:"cash_amount"`
	BankAmount     Amount `json:"bank_amount"`
	PaymentMethod  string `json:"payment_method"`
	Date           string `json:"date,omitempty"`
}
