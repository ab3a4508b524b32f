package models

// MessType is the meal plan of a subscription.
type MessType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MessMember is a mess subscription.
type MessMember struct {
	ID            int      `json:"id"`
	CustomerName  string   `json:"customer_name"`
	MobileNumber  string   `json:"mobile_number"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	MessType      MessType `json:"mess_type"`
	PaymentMethod string   `json:"payment_method"`
	TotalAmount   Amount   `json:"total_amount"`
	GrandTotal    Amount   `json:"grand_total"`
	PaidAmount    Amount   `json:"paid_amount"`
	PendingAmount Amount   `json:"pending_amount"`
	CashAmount    Amount   `json:"cash_amount"`
	BankAmount    Amount   `json:"bank_amount"`
	Status        string   `json:"status,omitempty"`
}

// MessTransaction is a payment received for a subscription.
type MessTransaction struct {
	ID             int    `json:"id"`
	ReceivedAmount Amount `json:"received_amount"`
	CashAmount     Amount `json:"cash_amount"`
	BankAmount     Amount `json:"bank_amount"`
	PaymentMethod  string `json:"payment_method"`
	Status         string `json:"status"`
	Date           string `json:"date"`
}

// Menu is a weekly menu line priced per week.
type Menu struct {
	ID       int    `json:"id"`
	Name     string `json:"name,omitempty"`
	SubTotal Amount `json:"sub_total"`
}
