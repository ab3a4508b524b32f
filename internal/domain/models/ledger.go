package models

import "strings"

// Nature group names used by the backend to classify main groups.
const (
	NatureAsset     = "Asset"
	NatureLiability = "Liability"
	NatureIncome    = "Income"
	NatureExpense   = "Expense"
)

// LedgerNature is the side on which a ledger normally carries its balance.
type LedgerNature string

const (
	NatureDebit  LedgerNature = "DEBIT"
	NatureCredit LedgerNature = "CREDIT"
)

// EntrySide is the debit/credit marker of a single transaction leg.
type EntrySide string

const (
	SideDebit  EntrySide = "debit"
	SideCredit EntrySide = "credit"
)

// NatureGroup is the top-level classification (Asset, Liability, Income, Expense).
type NatureGroup struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Group is a main group of ledgers, e.g. "Cash-in-Hand" or "Sundry Creditors".
type Group struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	NatureGroup *NatureGroup `json:"nature_group,omitempty"`
}

// Ledger is an account in the chart of accounts.
type Ledger struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	MobileNo       string       `json:"mobile_no,omitempty"`
	OpeningBalance Amount       `json:"opening_balance"`
	Date           string       `json:"date,omitempty"`
	Group          Group        `json:"group"`
	DebitCredit    LedgerNature `json:"debit_credit,omitempty"`
}

// Nature normalises the ledger nature; unknown or blank values yield "".
func (l Ledger) Nature() LedgerNature {
	switch LedgerNature(strings.ToUpper(strings.TrimSpace(string(l.DebitCredit)))) {
	case NatureDebit:
		return NatureDebit
	case NatureCredit:
		return NatureCredit
	default:
		return ""
	}
}

// Transaction is one leg of a voucher. Every voucher has a mirrored leg where
// ledger and particulars are swapped.
type Transaction struct {
	ID            int       `json:"id"`
	Ledger        Ledger    `json:"ledger"`
	Particulars   Ledger    `json:"particulars"`
	Date          string    `json:"date"`
	DebitAmount   Amount    `json:"debit_amount"`
	CreditAmount  Amount    `json:"credit_amount"`
	BalanceAmount Amount    `json:"balance_amount"`
	Remarks       string    `json:"remarks,omitempty"`
	VoucherNo     int       `json:"voucher_no"`
	RefNo         string    `json:"ref_no,omitempty"`
	DebitCredit   EntrySide `json:"debit_credit"`
}

// Debit and Credit let a Transaction be used wherever an Entry is expected.
func (t Transaction) Debit() Amount  { return t.DebitAmount }
func (t Transaction) Credit() Amount { return t.CreditAmount }

// ProfitAndLoss is the backend's aggregate for a period.
type ProfitAndLoss struct {
	TotalExpense Amount `json:"total_expense"`
	TotalIncome  Amount `json:"total_income"`
	NetProfit    Amount `json:"net_profit"`
	NetLoss      Amount `json:"net_loss"`
}
