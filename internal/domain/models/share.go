package models

// Profit/loss markers used by the share endpoints.
const (
	ShareProfit = "profit"
	ShareLoss   = "lose"
)

// ShareUser is a partner or manager entitled to a share of profit or loss.
type ShareUser struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	MobileNo        string `json:"mobile_no,omitempty"`
	Category        string `json:"category"`
	ProfitLoseShare Amount `json:"profitlose_share"`
	Address         string `json:"address,omitempty"`
}

// ShareUserRef is the compact user embedded in share transactions.
type ShareUserRef struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ShareUserTransaction is one user's line within a distribution.
type ShareUserTransaction struct {
	ID               int           `json:"id,omitempty"`
	Transaction      int           `json:"transaction,omitempty"`
	ShareUser        int           `json:"share_user"`
	ShareUserData    *ShareUserRef `json:"share_user_data,omitempty"`
	ProfitLose       string        `json:"profit_lose"`
	Percentage       Amount        `json:"percentage"`
	Amount           Amount        `json:"amount"`
	PercentageAmount Amount        `json:"percentage_amount"`
	BalanceAmount    Amount        `json:"balance_amount"`
}

// ProfitLossShareTransaction distributes a period's profit or loss among share users.
type ProfitLossShareTransaction struct {
	TransactionNo         string                 `json:"transaction_no,omitempty"`
	CreatedDate           string                 `json:"created_date"`
	PeriodFrom            string                 `json:"period_from"`
	PeriodTo              string                 `json:"period_to"`
	Status                string                 `json:"status"`
	ProfitAmount          Amount                 `json:"profit_amount"`
	LossAmount            Amount                 `json:"loss_amount"`
	TotalAmount           Amount                 `json:"total_amount"`
	TotalPercentage       Amount                 `json:"total_percentage"`
	ShareUserTransactions []ShareUserTransaction `json:"share_user_transactions"`
}

// IndividualShareTransaction is a user's line together with its parent distribution,
// as returned by the per-user transactions endpoint.
type IndividualShareTransaction struct {
	ID               int                        `json:"id"`
	ShareUserData    string                     `json:"share_user_data,omitempty"`
	Transaction      ProfitLossShareTransaction `json:"transaction"`
	ProfitLose       string                     `json:"profit_lose"`
	Percentage       Amount                     `json:"percentage"`
	Amount           Amount                     `json:"amount"`
	PercentageAmount Amount                     `json:"percentage_amount"`
	BalanceAmount    Amount                     `json:"balance_amount"`
}

// SharePayment records money paid out against a share line.
type SharePayment struct {
	ID                   int    `json:"id,omitempty"`
	ShareUserTransaction int    `json:"share_user_transaction"`
	PaidDate             string `json:"paid_date"`
	PaidAmount           Amount `json:"paid_amount"`
}
