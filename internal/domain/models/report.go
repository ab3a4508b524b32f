package models

import "time"

// DailySnapshot is the persisted end-of-day summary built by the scheduler.
type DailySnapshot struct {
	Date          time.Time `bson:"date" json:"date"`
	CashIn        string    `bson:"cash_in" json:"cash_in"`
	CashOut       string    `bson:"cash_out" json:"cash_out"`
	CashNet       string    `bson:"cash_net" json:"cash_net"`
	TotalIncome   string    `bson:"total_income" json:"total_income"`
	TotalExpenses string    `bson:"total_expenses" json:"total_expenses"`
	NetProfit     string    `bson:"net_profit" json:"net_profit"`
	NetLoss       string    `bson:"net_loss" json:"net_loss"`
	SalesTotal    string    `bson:"sales_total" json:"sales_total"`
	SalesCount    int       `bson:"sales_count" json:"sales_count"`
	Malformed     int       `bson:"malformed_rows" json:"malformed_rows"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
