package reporting

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/messledger/internal/domain/models"
	"github.com/mamadbah2/messledger/internal/repository/mongodb"
	"github.com/mamadbah2/messledger/internal/repository/sheets"
	"github.com/mamadbah2/messledger/pkg/clients/backend"
)

const dateLayout = "2006-01-02"

// Backend is the subset of the POS backend client the reports read from.
type Backend interface {
	Ledgers(query backend.Query, opts ...backend.PagerOption) *backend.Pager[models.Ledger]
	LedgerReport(ledger string, from, to time.Time, opts ...backend.PagerOption) *backend.Pager[models.Transaction]
	TransactionsByNatureGroup(ctx context.Context, nature string, from, to time.Time) ([]models.Transaction, error)
	ProfitAndLoss(ctx context.Context, from, to time.Time) (models.ProfitAndLoss, error)
	CashSheets(from, to time.Time, opts ...backend.PagerOption) *backend.Pager[models.CashCountSheet]
	SalesReport(ctx context.Context, filter backend.SalesFilter) ([]models.Order, error)
	MessMembers(query backend.Query, opts ...backend.PagerOption) *backend.Pager[models.MessMember]
	CreditUsers(opts ...backend.PagerOption) *backend.Pager[models.CreditUser]
	ShareUserTransactions(ctx context.Context, shareUserID int) ([]models.IndividualShareTransaction, error)
	ProfitLossShares(opts ...backend.PagerOption) *backend.Pager[models.ProfitLossShareTransaction]
	Floors(ctx context.Context) ([]models.Floor, error)
	Tables(floorID int, opts ...backend.PagerOption) *backend.Pager[models.DiningTable]
	Orders(query backend.Query, opts ...backend.PagerOption) *backend.Pager[models.Order]
	Bills(query backend.Query, opts ...backend.PagerOption) *backend.Pager[models.Bill]
	CreditTransactions(creditUserID int, opts ...backend.PagerOption) *backend.Pager[models.CreditTransaction]
	MessTransactions(messID int, opts ...backend.PagerOption) *backend.Pager[models.MessTransaction]
	SharePayments(ctx context.Context, shareUserTransactionID int) ([]models.SharePayment, error)
}

// Service builds every report from backend data.
type Service struct {
	backend   Backend
	snapshots mongodb.Repository
	exporter  sheets.Exporter
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures optional collaborators.
type Option func(*Service)

// WithSnapshotStore persists daily snapshots.
func WithSnapshotStore(store mongodb.Repository) Option {
	return func(s *Service) { s.snapshots = store }
}

// WithExporter exports daily snapshots to a spreadsheet.
func WithExporter(exporter sheets.Exporter) Option {
	return func(s *Service) { s.exporter = exporter }
}

// NewService wires a new reporting service instance.
func NewService(client Backend, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{backend: client, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// collect walks a pager to the end. A failure on the first page is returned;
// a failure further on is logged and ends the walk with what was gathered, and
// incomplete is set.
func collect[T any](ctx context.Context, logger *zap.Logger, op string, pager *backend.Pager[T]) (items []T, incomplete bool, err error) {
	items, err = pager.Collect(ctx)
	if err == nil {
		return items, false, nil
	}
	if len(items) == 0 {
		return nil, false, err
	}
	logger.Warn("pagination stopped early", zap.String("op", op), zap.Int("collected", len(items)), zap.Error(err))
	return items, true, nil
}
