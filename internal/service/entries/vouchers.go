package entries

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/messledger/internal/accounting"
	"github.com/mamadbah2/messledger/internal/domain/models"
)

// VoucherRequest is a two-leg pay-in or pay-out. DebitLedgerID receives the
// debit leg and CreditLedgerID the mirrored credit leg.
type VoucherRequest struct {
	DebitLedgerID  int                       `json:"debit_ledger_id" validate:"required,gt=0"`
	CreditLedgerID int                       `json:"credit_ledger_id" validate:"required,gt=0,nefield=DebitLedgerID"`
	Date           string                    `json:"date" validate:"required,datetime=2006-01-02"`
	Amount         string                    `json:"amount" validate:"required,numeric"`
	Remarks        string                    `json:"remarks" validate:"max=255"`
	RefNo          string                    `json:"ref_no" validate:"omitempty,max=50"`
	CashCount      []accounting.CashCountRow `json:"cash_count" validate:"omitempty,dive"`
}

// VoucherResult is what the backend created for a voucher.
type VoucherResult struct {
	Transactions []models.Transaction   `json:"transactions"`
	CashSheet    *models.CashCountSheet `json:"cash_sheet,omitempty"`
	CashCount    *accounting.CashCount  `json:"cash_count,omitempty"`
}

// PayIn posts money received: the cash or bank ledger is debited and the paying
// party credited.
func (s *Service) PayIn(ctx context.Context, req VoucherRequest) (VoucherResult, error) {
	return s.postVoucher(ctx, models.PostingPayIn, req)
}

// PayOut posts money paid: the expense or payable ledger is debited and the
// cash or bank ledger credited.
func (s *Service) PayOut(ctx context.Context, req VoucherRequest) (VoucherResult, error) {
	return s.postVoucher(ctx, models.PostingPayOut, req)
}

func (s *Service) postVoucher(ctx context.Context, kind string, req VoucherRequest) (VoucherResult, error) {
	if err := s.check(req); err != nil {
		return VoucherResult{}, err
	}
	amount, err := positive("amount", req.Amount)
	if err != nil {
		return VoucherResult{}, err
	}

	var count *accounting.CashCount
	if len(req.CashCount) > 0 {
		c, err := accounting.CountCash(req.CashCount)
		if err != nil {
			return VoucherResult{}, invalid("cash_count", err.Error())
		}
		count = &c
	}

	debit, credit := models.NewAmount(amount), models.NewAmount(decimal.Zero)
	refNo := strings.TrimSpace(req.RefNo)
	posting := models.PayInOutPosting{
		TransactionType: kind,
		Transaction1: models.TransactionLeg{
			LedgerID:      req.DebitLedgerID,
			ParticularsID: req.CreditLedgerID,
			Date:          req.Date,
			DebitAmount:   debit,
			CreditAmount:  credit,
			Remarks:       req.Remarks,
			RefNo:         refNo,
			DebitCredit:   models.SideDebit,
		},
		Transaction2: models.TransactionLeg{
			LedgerID:      req.CreditLedgerID,
			ParticularsID: req.DebitLedgerID,
			Date:          req.Date,
			DebitAmount:   credit,
			CreditAmount:  debit,
			Remarks:       req.Remarks,
			RefNo:         refNo,
			DebitCredit:   models.SideCredit,
		},
	}

	txns, err := s.backend.PostPayInOut(ctx, posting)
	if err != nil {
		return VoucherResult{}, fmt.Errorf("post %s voucher: %w", kind, err)
	}
	result := VoucherResult{Transactions: txns, CashCount: count}

	s.logger.Info("voucher posted",
		zap.String("type", kind),
		zap.Int("debit_ledger", req.DebitLedgerID),
		zap.Int("credit_ledger", req.CreditLedgerID),
		zap.String("amount", debit.String()),
	)

	if count == nil {
		return result, nil
	}

	sheetType := models.CashPayIn
	if kind == models.PostingPayOut {
		sheetType = models.CashPayOut
	}
	sheet := models.CashCountSheet{
		CreatedDate:     req.Date,
		VoucherNumber:   voucherNumber(txns, refNo),
		Amount:          debit,
		TransactionType: sheetType,
		Items:           datedItems(count.Items, req.Date),
	}

	created, err := s.backend.CreateCashSheets(ctx, sheet)
	if err != nil {
		s.logger.Error("cash sheet failed after voucher was posted", zap.String("type", kind), zap.Error(err))
		return result, &PartialError{Applied: kind + " voucher", Failed: "cash count sheet", Result: result, Err: err}
	}
	if len(created) > 0 {
		result.CashSheet = &created[0]
	} else {
		result.CashSheet = &sheet
	}
	return result, nil
}

// voucherNumber prefers the number the backend assigned, then a numeric ref no.
func voucherNumber(txns []models.Transaction, refNo string) *int {
	for _, t := range txns {
		if t.VoucherNo > 0 {
			n := t.VoucherNo
			return &n
		}
	}
	if n, err := strconv.Atoi(refNo); err == nil {
		return &n
	}
	return nil
}

func datedItems(items []models.CashCountItem, date string) []models.CashCountItem {
	out := make([]models.CashCountItem, len(items))
	for i, item := range items {
		item.CreatedDate = date
		out[i] = item
	}
	return out
}

// PreviewCashCount prices a cash count without posting anything.
func (s *Service) PreviewCashCount(rows []accounting.CashCountRow) (accounting.CashCount, error) {
	count, err := accounting.CountCash(rows)
	if err != nil {
		return accounting.CashCount{}, invalid("cash_count", err.Error())
	}
	return count, nil
}

// SalesEntryRequest is a day's sales split into cash and bank receipts plus
// the matching purchase.
type SalesEntryRequest struct {
	CashLedgerID          int    `json:"cash_ledger_id" validate:"required,gt=0"`
	BankLedgerID          int    `json:"bank_ledger_id" validate:"required,gt=0"`
	SalesLedgerID         int    `json:"sales_ledger_id" validate:"required,gt=0"`
	PurchaseLedgerID      int    `json:"purchase_ledger_id" validate:"required,gt=0"`
	PurchaseParticularsID int    `json:"purchase_particulars_id" validate:"required,gt=0"`
	Date                  string `json:"date" validate:"required,datetime=2006-01-02"`
	CashAmount            string `json:"cash_amount" validate:"omitempty,numeric"`
	BankAmount            string `json:"bank_amount" validate:"omitempty,numeric"`
	PurchaseAmount        string `json:"purchase_amount" validate:"omitempty,numeric"`
	Remarks               string `json:"remarks" validate:"max=255"`
	RefNo                 string `json:"ref_no" validate:"omitempty,max=50"`
}

// SalesEntry posts the six legs of a sales entry under one voucher.
func (s *Service) SalesEntry(ctx context.Context, req SalesEntryRequest) ([]models.Transaction, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	cash, err := optional("cash_amount", req.CashAmount)
	if err != nil {
		return nil, err
	}
	bank, err := optional("bank_amount", req.BankAmount)
	if err != nil {
		return nil, err
	}
	purchase, err := optional("purchase_amount", req.PurchaseAmount)
	if err != nil {
		return nil, err
	}
	if cash.Add(bank).Add(purchase).IsZero() {
		return nil, invalid("cash_amount", "at least one amount must be greater than zero")
	}

	refNo := strings.TrimSpace(req.RefNo)
	pair := func(debitLedger, creditLedger int, amount decimal.Decimal) (models.TransactionLeg, models.TransactionLeg) {
		a, zero := models.NewAmount(amount), models.NewAmount(decimal.Zero)
		return models.TransactionLeg{
				LedgerID: debitLedger, ParticularsID: creditLedger, Date: req.Date,
				DebitAmount: a, CreditAmount: zero, Remarks: req.Remarks, RefNo: refNo, DebitCredit: models.SideDebit,
			}, models.TransactionLeg{
				LedgerID: creditLedger, ParticularsID: debitLedger, Date: req.Date,
				DebitAmount: zero, CreditAmount: a, Remarks: req.Remarks, RefNo: refNo, DebitCredit: models.SideCredit,
			}
	}

	posting := models.SalesEntryPosting{TransactionType: models.PostingSalesEntry}
	posting.SalesCashTransaction1, posting.SalesCashTransaction2 = pair(req.CashLedgerID, req.SalesLedgerID, cash)
	posting.SalesBankTransaction1, posting.SalesBankTransaction2 = pair(req.BankLedgerID, req.SalesLedgerID, bank)
	posting.PurchaseTransaction1, posting.PurchaseTransaction2 = pair(req.PurchaseLedgerID, req.PurchaseParticularsID, purchase)

	txns, err := s.backend.PostSalesEntry(ctx, posting)
	if err != nil {
		return nil, fmt.Errorf("post sales entry: %w", err)
	}

	s.logger.Info("sales entry posted",
		zap.String("date", req.Date),
		zap.String("cash", cash.StringFixed(2)),
		zap.String("bank", bank.StringFixed(2)),
		zap.String("purchase", purchase.StringFixed(2)),
	)
	return txns, nil
}
