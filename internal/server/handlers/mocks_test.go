package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mamadbah2/messledger/internal/accounting"
	"github.com/mamadbah2/messledger/internal/domain/models"
	"github.com/mamadbah2/messledger/internal/service/entries"
	"github.com/mamadbah2/messledger/internal/service/reporting"
	"github.com/mamadbah2/messledger/pkg/clients/backend"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Ledgers(ctx context.Context) (reporting.Listing[models.Ledger], error) {
	args := m.Called(ctx)
	return args.Get(0).(reporting.Listing[models.Ledger]), args.Error(1)
}

func (m *MockReportService) LedgerReport(ctx context.Context, ledger string, from, to time.Time) (reporting.LedgerReport, error) {
	args := m.Called(ctx, ledger, from, to)
	return args.Get(0).(reporting.LedgerReport), args.Error(1)
}

func (m *MockReportService) DayBook(ctx context.Context, from, to time.Time) (accounting.DayBook, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(accounting.DayBook), args.Error(1)
}

func (m *MockReportService) IncomeStatement(ctx context.Context, from, to time.Time) (reporting.IncomeStatementReport, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(reporting.IncomeStatementReport), args.Error(1)
}

func (m *MockReportService) BalanceSheet(ctx context.Context, from, to time.Time) (reporting.BalanceSheetReport, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(reporting.BalanceSheetReport), args.Error(1)
}

func (m *MockReportService) SalesSummary(ctx context.Context, filter backend.SalesFilter) (reporting.SalesReport, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(reporting.SalesReport), args.Error(1)
}

func (m *MockReportService) MessSummary(ctx context.Context, query backend.Query) (reporting.MessReport, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(reporting.MessReport), args.Error(1)
}

func (m *MockReportService) CreditUsers(ctx context.Context) (reporting.CreditReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(reporting.CreditReport), args.Error(1)
}

func (m *MockReportService) DiningOverview(ctx context.Context) ([]reporting.FloorTables, error) {
	args := m.Called(ctx)
	return args.Get(0).([]reporting.FloorTables), args.Error(1)
}

func (m *MockReportService) ProfitLossShares(ctx context.Context) (reporting.Listing[models.ProfitLossShareTransaction], error) {
	args := m.Called(ctx)
	return args.Get(0).(reporting.Listing[models.ProfitLossShareTransaction]), args.Error(1)
}

func (m *MockReportService) IndividualShareReport(ctx context.Context, shareUserID int) (reporting.IndividualShareReport, error) {
	args := m.Called(ctx, shareUserID)
	return args.Get(0).(reporting.IndividualShareReport), args.Error(1)
}

func (m *MockReportService) Snapshot(ctx context.Context, day time.Time) (models.DailySnapshot, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(models.DailySnapshot), args.Error(1)
}

func (m *MockReportService) SnapshotHistory(ctx context.Context, from, to time.Time) ([]models.DailySnapshot, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]models.DailySnapshot), args.Error(1)
}

func (m *MockReportService) Orders(ctx context.Context, query backend.Query) (reporting.Listing[models.Order], error) {
	args := m.Called(ctx, query)
	return args.Get(0).(reporting.Listing[models.Order]), args.Error(1)
}

func (m *MockReportService) Bills(ctx context.Context, query backend.Query) (reporting.Listing[models.Bill], error) {
	args := m.Called(ctx, query)
	return args.Get(0).(reporting.Listing[models.Bill]), args.Error(1)
}

func (m *MockReportService) CreditHistory(ctx context.Context, creditUserID int) (reporting.Listing[models.CreditTransaction], error) {
	args := m.Called(ctx, creditUserID)
	return args.Get(0).(reporting.Listing[models.CreditTransaction]), args.Error(1)
}

func (m *MockReportService) MessHistory(ctx context.Context, messID int) (reporting.Listing[models.MessTransaction], error) {
	args := m.Called(ctx, messID)
	return args.Get(0).(reporting.Listing[models.MessTransaction]), args.Error(1)
}

func (m *MockReportService) SharePayments(ctx context.Context, shareUserTransactionID int) (reporting.Listing[models.SharePayment], error) {
	args := m.Called(ctx, shareUserTransactionID)
	return args.Get(0).(reporting.Listing[models.SharePayment]), args.Error(1)
}

type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) PayIn(ctx context.Context, req entries.VoucherRequest) (entries.VoucherResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(entries.VoucherResult), args.Error(1)
}

func (m *MockEntryService) PayOut(ctx context.Context, req entries.VoucherRequest) (entries.VoucherResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(entries.VoucherResult), args.Error(1)
}

func (m *MockEntryService) SalesEntry(ctx context.Context, req entries.SalesEntryRequest) ([]models.Transaction, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockEntryService) PreviewCashCount(rows []accounting.CashCountRow) (accounting.CashCount, error) {
	args := m.Called(rows)
	return args.Get(0).(accounting.CashCount), args.Error(1)
}

func (m *MockEntryService) CreditPayment(ctx context.Context, req entries.CreditPaymentRequest) (models.CreditTransaction, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.CreditTransaction), args.Error(1)
}

func (m *MockEntryService) RenewMess(ctx context.Context, messID int, req entries.RenewMessRequest) (models.MessMember, error) {
	args := m.Called(ctx, messID, req)
	return args.Get(0).(models.MessMember), args.Error(1)
}

func (m *MockEntryService) DistributeProfitLoss(ctx context.Context, req entries.DistributionRequest) (entries.DistributionResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(entries.DistributionResult), args.Error(1)
}

func (m *MockEntryService) EditShareUserTransaction(ctx context.Context, id int, req entries.ShareLineEdit) (models.ShareUserTransaction, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(models.ShareUserTransaction), args.Error(1)
}

func (m *MockEntryService) RecordSharePayment(ctx context.Context, req entries.SharePaymentRequest) (models.SharePayment, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.SharePayment), args.Error(1)
}

func (m *MockEntryService) CreateBill(ctx context.Context, req entries.BillRequest) (models.Bill, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Bill), args.Error(1)
}

func (m *MockEntryService) CancelBill(ctx context.Context, billID int) error {
	return m.Called(ctx, billID).Error(0)
}

func (m *MockEntryService) DeliverOrder(ctx context.Context, orderID int) (entries.DeliveryResult, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(entries.DeliveryResult), args.Error(1)
}
