package entries_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/messledger/internal/accounting"
	"github.com/mamadbah2/messledger/internal/domain/models"
	"github.com/mamadbah2/messledger/internal/service/entries"
	"github.com/mamadbah2/messledger/pkg/clients/backend"
)

type MockBackend struct {
	mock.Mock
}

func staticPager[T any](items []T) *backend.Pager[T] {
	return backend.NewPager[T]("", nil, func(context.Context, string, backend.Query) (models.Page[T], error) {
		return models.Page[T]{Count: len(items), Results: items}, nil
	})
}

func (m *MockBackend) PostPayInOut(ctx context.Context, posting models.PayInOutPosting) ([]models.Transaction, error) {
	args := m.Called(ctx, posting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockBackend) PostSalesEntry(ctx context.Context, posting models.SalesEntryPosting) ([]models.Transaction, error) {
	args := m.Called(ctx, posting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockBackend) CreateCashSheets(ctx context.Context, sheets ...models.CashCountSheet) ([]models.CashCountSheet, error) {
	args := m.Called(ctx, sheets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CashCountSheet), args.Error(1)
}

func (m *MockBackend) CreditUser(ctx context.Context, id int) (models.CreditUser, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.CreditUser), args.Error(1)
}

func (m *MockBackend) CreateCreditTransaction(ctx context.Context, txn models.CreditTransaction) (models.CreditTransaction, error) {
	args := m.Called(ctx, txn)
	return args.Get(0).(models.CreditTransaction), args.Error(1)
}

func (m *MockBackend) MessMember(ctx context.Context, id int) (models.MessMember, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.MessMember), args.Error(1)
}

func (m *MockBackend) Menus(messTypeID int, _ ...backend.PagerOption) *backend.Pager[models.Menu] {
	args := m.Called(messTypeID)
	return staticPager(args.Get(0).([]models.Menu))
}

func (m *MockBackend) RenewMess(ctx context.Context, id int, renewal models.MessRenewal) (models.MessMember, error) {
	args := m.Called(ctx, id, renewal)
	return args.Get(0).(models.MessMember), args.Error(1)
}

func (m *MockBackend) ShareUsers(_ ...backend.PagerOption) *backend.Pager[models.ShareUser] {
	args := m.Called()
	return staticPager(args.Get(0).([]models.ShareUser))
}

func (m *MockBackend) CreateProfitLossShare(ctx context.Context, txn models.ProfitLossShareTransaction) (models.ProfitLossShareTransaction, error) {
	args := m.Called(ctx, txn)
	return args.Get(0).(models.ProfitLossShareTransaction), args.Error(1)
}

func (m *MockBackend) ShareUserTransaction(ctx context.Context, id int) (models.ShareUserTransaction, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.ShareUserTransaction), args.Error(1)
}

func (m *MockBackend) UpdateShareUserTransaction(ctx context.Context, id int, update models.ShareUserTransactionUpdate) (models.ShareUserTransaction, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(models.ShareUserTransaction), args.Error(1)
}

func (m *MockBackend) CreateSharePayment(ctx context.Context, payment models.SharePayment) (models.SharePayment, error) {
	args := m.Called(ctx, payment)
	return args.Get(0).(models.SharePayment), args.Error(1)
}

func (m *MockBackend) Order(ctx context.Context, id int) (models.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Order), args.Error(1)
}

func (m *MockBackend) UpdateOrderStatus(ctx context.Context, orderID int, update models.OrderStatusUpdate) (models.Order, error) {
	args := m.Called(ctx, orderID, update)
	return args.Get(0).(models.Order), args.Error(1)
}

func (m *MockBackend) CreateBill(ctx context.Context, req models.BillRequest) (models.Bill, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Bill), args.Error(1)
}

func (m *MockBackend) CancelBill(ctx context.Context, billID int) error {
	return m.Called(ctx, billID).Error(0)
}

var ctx = context.Background()

func voucher() entries.VoucherRequest {
	return entries.VoucherRequest{
		DebitLedgerID:  1,
		CreditLedgerID: 9,
		Date:           "2024-03-01",
		Amount:         "1150",
		Remarks:        "counter",
	}
}

func TestPayIn_PostsMirroredLegs(t *testing.T) {
	m := new(MockBackend)
	m.On("PostPayInOut", ctx, mock.MatchedBy(func(p models.PayInOutPosting) bool {
		return p.TransactionType == models.PostingPayIn &&
			p.Transaction1.LedgerID == 1 && p.Transaction1.ParticularsID == 9 &&
			p.Transaction1.DebitAmount.String() == "1150.00" && p.Transaction1.DebitCredit == models.SideDebit &&
			p.Transaction2.LedgerID == 9 && p.Transaction2.ParticularsID == 1 &&
			p.Transaction2.CreditAmount.String() == "1150.00" && p.Transaction2.DebitCredit == models.SideCredit
	})).Return([]models.Transaction{{ID: 1, VoucherNo: 12}, {ID: 2, VoucherNo: 12}}, nil)

	result, err := entries.NewService(m, nil).PayIn(ctx, voucher())

	require.NoError(t, err)
	assert.Len(t, result.Transactions, 2)
	assert.Nil(t, result.CashSheet)
	m.AssertExpectations(t)
	m.AssertNotCalled(t, "CreateCashSheets", mock.Anything, mock.Anything)
}

func TestPayOut_WithCashCount(t *testing.T) {
	m := new(MockBackend)
	m.On("PostPayInOut", ctx, mock.Anything).Return([]models.Transaction{{ID: 1, VoucherNo: 7}}, nil)
	m.On("CreateCashSheets", ctx, mock.MatchedBy(func(sheets []models.CashCountSheet) bool {
		s := sheets[0]
		return len(sheets) == 1 && s.TransactionType == models.CashPayOut &&
			s.Amount.String() == "1150.00" && *s.VoucherNumber == 7 && len(s.Items) == 2 &&
			s.Items[0].CreatedDate == "2024-03-01"
	})).Return([]models.CashCountSheet{{ID: 3}}, nil)

	req := voucher()
	req.CashCount = []accounting.CashCountRow{{Currency: 500, Nos: 2}, {Currency: 100, Nos: 0}, {Currency: 50, Nos: 3}}

	result, err := entries.NewService(m, nil).PayOut(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, result.CashSheet)
	assert.Equal(t, 3, result.CashSheet.ID)
	assert.Equal(t, "1150.00", result.CashCount.GrandTotal.String())
	m.AssertExpectations(t)
}

func TestPayIn_CashSheetFailureIsPartial(t *testing.T) {
	m := new(MockBackend)
	m.On("PostPayInOut", ctx, mock.Anything).Return([]models.Transaction{{ID: 1}}, nil)
	m.On("CreateCashSheets", ctx, mock.Anything).Return(nil, errors.New("backend down"))

	req := voucher()
	req.CashCount = []accounting.CashCountRow{{Currency: 500, Nos: 1}}

	result, err := entries.NewService(m, nil).PayIn(ctx, req)

	require.ErrorIs(t, err, entries.ErrPartialPosting)
	assert.Len(t, result.Transactions, 1)
	var partial *entries.PartialError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "cash count sheet", partial.Failed)
}

func TestPayIn_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entries.VoucherRequest)
		field  string
	}{
		{name: "same ledgers", mutate: func(r *entries.VoucherRequest) { r.CreditLedgerID = r.DebitLedgerID }, field: "credit_ledger_id"},
		{name: "bad date", mutate: func(r *entries.VoucherRequest) { r.Date = "01/03/2024" }, field: "date"},
		{name: "not a number", mutate: func(r *entries.VoucherRequest) { r.Amount = "ten" }, field: "amount"},
		{name: "zero amount", mutate: func(r *entries.VoucherRequest) { r.Amount = "0" }, field: "amount"},
		{name: "empty cash count", mutate: func(r *entries.VoucherRequest) {
			r.CashCount = []accounting.CashCountRow{{Currency: 500, Nos: 0}}
		}, field: "cash_count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockBackend)
			req := voucher()
			tt.mutate(&req)

			_, err := entries.NewService(m, nil).PayIn(ctx, req)

			require.ErrorIs(t, err, entries.ErrValidation)
			var verr *entries.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
			m.AssertNotCalled(t, "PostPayInOut", mock.Anything, mock.Anything)
		})
	}
}

func TestSalesEntry_SixLegs(t *testing.T) {
	m := new(MockBackend)
	m.On("PostSalesEntry", ctx, mock.MatchedBy(func(p models.SalesEntryPosting) bool {
		return p.TransactionType == models.PostingSalesEntry &&
			p.SalesCashTransaction1.DebitAmount.String() == "700.00" &&
			p.SalesCashTransaction2.CreditAmount.String() == "700.00" &&
			p.SalesCashTransaction2.LedgerID == 3 &&
			p.SalesBankTransaction1.DebitAmount.String() == "300.00" &&
			p.SalesBankTransaction2.CreditAmount.String() == "300.00" &&
			p.PurchaseTransaction1.DebitAmount.String() == "0.00" &&
			p.SalesCashTransaction1.RefNo == "R1"
	})).Return(make([]models.Transaction, 6), nil)

	txns, err := entries.NewService(m, nil).SalesEntry(ctx, entries.SalesEntryRequest{
		CashLedgerID: 1, BankLedgerID: 2, SalesLedgerID: 3, PurchaseLedgerID: 4, PurchaseParticularsID: 5,
		Date: "2024-03-01", CashAmount: "700", BankAmount: "300", RefNo: " R1 ",
	})

	require.NoError(t, err)
	assert.Len(t, txns, 6)
	m.AssertExpectations(t)
}

func TestCreditPayment(t *testing.T) {
	m := new(MockBackend)
	m.On("CreditUser", ctx, 5).Return(models.CreditUser{ID: 5, TotalDue: models.ParseAmount("300")}, nil)
	m.On("CreateCreditTransaction", ctx, mock.MatchedBy(func(txn models.CreditTransaction) bool {
		return txn.CreditUser == 5 && txn.CashAmount.String() == "100.00" && txn.BankAmount.String() == "150.00" &&
			txn.PaymentMethod == models.PaymentCashBank && txn.Date == "2024-03-01"
	})).Return(models.CreditTransaction{ID: 11}, nil)

	txn, err := entries.NewService(m, nil).CreditPayment(ctx, entries.CreditPaymentRequest{
		CreditUserID: 5, PaymentMethod: models.PaymentCashBank, ReceivedAmount: "250",
		CashAmount: "100", BankAmount: "150", Date: "2024-03-01",
	})

	require.NoError(t, err)
	assert.Equal(t, 11, txn.ID)
	m.AssertExpectations(t)
}

func TestCreditPayment_Rejected(t *testing.T) {
	m := new(MockBackend)
	m.On("CreditUser", ctx, 5).Return(models.CreditUser{ID: 5, TotalDue: models.ParseAmount("100")}, nil)
	svc := entries.NewService(m, nil)

	_, err := svc.CreditPayment(ctx, entries.CreditPaymentRequest{CreditUserID: 5, PaymentMethod: models.PaymentCash, ReceivedAmount: "150"})
	assert.ErrorIs(t, err, entries.ErrValidation)

	_, err = svc.CreditPayment(ctx, entries.CreditPaymentRequest{
		CreditUserID: 5, PaymentMethod: models.PaymentCashBank, ReceivedAmount: "50", CashAmount: "10", BankAmount: "10",
	})
	assert.ErrorIs(t, err, entries.ErrValidation)

	_, err = svc.CreditPayment(ctx, entries.CreditPaymentRequest{CreditUserID: 5, PaymentMethod: "cheque", ReceivedAmount: "50"})
	assert.ErrorIs(t, err, entries.ErrValidation)

	m.AssertNotCalled(t, "CreateCreditTransaction", mock.Anything, mock.Anything)
}

func TestDistributeProfitLoss(t *testing.T) {
	m := new(MockBackend)
	m.On("ShareUsers").Return([]models.ShareUser{
		{ID: 1, Name: "Anil", ProfitLoseShare: models.ParseAmount("25")},
		{ID: 2, Name: "Binu", ProfitLoseShare: models.ParseAmount("75")},
	})
	m.On("CreateProfitLossShare", ctx, mock.MatchedBy(func(txn models.ProfitLossShareTransaction) bool {
		return txn.Status == models.ShareProfit && txn.ProfitAmount.String() == "1000.00" &&
			txn.LossAmount.String() == "0.00" && txn.TotalAmount.String() == "1000.00" &&
			len(txn.ShareUserTransactions) == 2 &&
			txn.ShareUserTransactions[0].PercentageAmount.String() == "250.00" &&
			txn.ShareUserTransactions[0].BalanceAmount.String() == "250.00"
	})).Return(models.ProfitLossShareTransaction{TransactionNo: "PL-1"}, nil)

	result, err := entries.NewService(m, nil).DistributeProfitLoss(ctx, entries.DistributionRequest{
		Date: "2024-04-01", PeriodFrom: "2024-03-01", PeriodTo: "2024-03-31", Status: models.ShareProfit, Amount: "1000",
	})

	require.NoError(t, err)
	assert.Equal(t, "PL-1", result.Transaction.TransactionNo)
	assert.True(t, result.Summary.FullyAllocated)
	m.AssertExpectations(t)
}

func TestDistributeProfitLoss_UnknownAllocation(t *testing.T) {
	m := new(MockBackend)
	m.On("ShareUsers").Return([]models.ShareUser{{ID: 1}})

	_, err := entries.NewService(m, nil).DistributeProfitLoss(ctx, entries.DistributionRequest{
		Date: "2024-04-01", PeriodFrom: "2024-03-01", PeriodTo: "2024-03-31", Status: models.ShareLoss, Amount: "500",
		Allocations: []entries.ShareAllocation{{ShareUserID: 2, Percentage: "50"}},
	})

	assert.ErrorIs(t, err, entries.ErrValidation)
}

func TestEditShareUserTransaction(t *testing.T) {
	m := new(MockBackend)
	m.On("ShareUserTransaction", ctx, 8).Return(models.ShareUserTransaction{
		ID: 8, Transaction: 3, ShareUser: 1, ProfitLose: models.ShareProfit,
		Percentage: models.ParseAmount("25"), Amount: models.ParseAmount("1000"), PercentageAmount: models.ParseAmount("250"),
	}, nil)
	m.On("UpdateShareUserTransaction", ctx, 8, mock.MatchedBy(func(u models.ShareUserTransactionUpdate) bool {
		return u.Percentage.String() == "30.00" && u.Amount.String() == "1000.00" &&
			u.PercentageAmount.String() == "300.00" && u.Transaction == 3 && u.ShareUser == 1
	})).Return(models.ShareUserTransaction{ID: 8}, nil)

	_, err := entries.NewService(m, nil).EditShareUserTransaction(ctx, 8, entries.ShareLineEdit{Percentage: "30"})

	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestRecordSharePayment_LimitedToBalance(t *testing.T) {
	m := new(MockBackend)
	m.On("ShareUserTransaction", ctx, 8).Return(models.ShareUserTransaction{ID: 8, BalanceAmount: models.ParseAmount("100")}, nil)
	svc := entries.NewService(m, nil)

	_, err := svc.RecordSharePayment(ctx, entries.SharePaymentRequest{ShareUserTransactionID: 8, PaidAmount: "120"})
	assert.ErrorIs(t, err, entries.ErrValidation)

	m.On("CreateSharePayment", ctx, mock.MatchedBy(func(p models.SharePayment) bool {
		return p.PaidAmount.String() == "100.00" && p.PaidDate == "2024-03-05"
	})).Return(models.SharePayment{ID: 1}, nil)

	payment, err := svc.RecordSharePayment(ctx, entries.SharePaymentRequest{ShareUserTransactionID: 8, PaidAmount: "100", PaidDate: "2024-03-05"})
	require.NoError(t, err)
	assert.Equal(t, 1, payment.ID)
}

func TestDeliverOrder(t *testing.T) {
	m := new(MockBackend)
	m.On("Order", ctx, 4).Return(models.Order{ID: 4, Status: models.OrderApproved, TotalAmount: models.ParseAmount("480")}, nil)
	m.On("UpdateOrderStatus", ctx, 4, mock.MatchedBy(func(u models.OrderStatusUpdate) bool {
		return u.Status == models.OrderDelivered && u.PaymentMethod == models.PaymentCash &&
			u.CashAmount.String() == "480.00" && u.BankAmount.String() == "0.00"
	})).Return(models.Order{ID: 4, Status: models.OrderDelivered}, nil)
	m.On("CreateBill", ctx, mock.MatchedBy(func(req models.BillRequest) bool {
		return req.OrderID == 4 && req.TotalAmount.String() == "480.00" && req.Paid
	})).Return(models.Bill{ID: 9}, nil)

	result, err := entries.NewService(m, nil).DeliverOrder(ctx, 4)

	require.NoError(t, err)
	require.NotNil(t, result.Bill)
	assert.Equal(t, 9, result.Bill.ID)
	m.AssertExpectations(t)
}

func TestDeliverOrder_BillFailureIsPartial(t *testing.T) {
	m := new(MockBackend)
	m.On("Order", ctx, 4).Return(models.Order{ID: 4, TotalAmount: models.ParseAmount("480")}, nil)
	m.On("UpdateOrderStatus", ctx, 4, mock.Anything).Return(models.Order{ID: 4, Status: models.OrderDelivered}, nil)
	m.On("CreateBill", ctx, mock.Anything).Return(models.Bill{}, errors.New("boom"))

	result, err := entries.NewService(m, nil).DeliverOrder(ctx, 4)

	assert.ErrorIs(t, err, entries.ErrPartialPosting)
	assert.Equal(t, models.OrderDelivered, result.Order.Status)
	assert.Nil(t, result.Bill)
}

func TestDeliverOrder_Cancelled(t *testing.T) {
	m := new(MockBackend)
	m.On("Order", ctx, 4).Return(models.Order{ID: 4, Status: models.OrderCancelled}, nil)

	_, err := entries.NewService(m, nil).DeliverOrder(ctx, 4)

	assert.ErrorIs(t, err, entries.ErrValidation)
	m.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestRenewMess(t *testing.T) {
	m := new(MockBackend)
	m.On("MessMember", ctx, 6).Return(models.MessMember{ID: 6, MessType: models.MessType{ID: 2}}, nil)
	m.On("Menus", 2).Return([]models.Menu{{ID: 1, SubTotal: models.ParseAmount("700")}, {ID: 2, SubTotal: models.ParseAmount("350")}})
	m.On("RenewMess", ctx, 6, mock.MatchedBy(func(r models.MessRenewal) bool {
		return r.EndDate == "2024-03-29" && r.TotalAmount.String() == "4200.00" &&
			r.GrandTotal.String() == "4000.00" && r.PendingAmount.String() == "3000.00" &&
			r.CashAmount.String() == "1000.00" && len(r.Menus) == 2
	})).Return(models.MessMember{ID: 6}, nil)

	_, err := entries.NewService(m, nil).RenewMess(ctx, 6, entries.RenewMessRequest{
		StartDate: "2024-03-01", Weeks: 4, DiscountAmount: "200", PaidAmount: "1000", PaymentMethod: models.PaymentCash,
	})

	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestCancelBill(t *testing.T) {
	m := new(MockBackend)
	m.On("CancelBill", ctx, 3).Return(nil)

	require.NoError(t, entries.NewService(m, nil).CancelBill(ctx, 3))
	assert.ErrorIs(t, entries.NewService(m, nil).CancelBill(ctx, 0), entries.ErrValidation)
}

func TestPreviewCashCount(t *testing.T) {
	count, err := entries.NewService(new(MockBackend), nil).PreviewCashCount([]accounting.CashCountRow{{Currency: 200, Nos: 3}})
	require.NoError(t, err)
	assert.Equal(t, "600.00", count.GrandTotal.String())
}
