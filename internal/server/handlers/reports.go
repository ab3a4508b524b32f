package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/messledger/internal/accounting"
	"github.com/mamadbah2/messledger/internal/domain/models"
	"github.com/mamadbah2/messledger/internal/service/reporting"
	"github.com/mamadbah2/messledger/pkg/clients/backend"
)

// ReportService is the read side served by ReportHandler.
type ReportService interface {
	Ledgers(ctx context.Context) (reporting.Listing[models.Ledger], error)
	LedgerReport(ctx context.Context, ledger string, from, to time.Time) (reporting.LedgerReport, error)
	DayBook(ctx context.Context, from, to time.Time) (accounting.DayBook, error)
	IncomeStatement(ctx context.Context, from, to time.Time) (reporting.IncomeStatementReport, error)
	BalanceSheet(ctx context.Context, from, to time.Time) (reporting.BalanceSheetReport, error)
	SalesSummary(ctx context.Context, filter backend.SalesFilter) (reporting.SalesReport, error)
	MessSummary(ctx context.Context, query backend.Query) (reporting.MessReport, error)
	CreditUsers(ctx context.Context) (reporting.CreditReport, error)
	DiningOverview(ctx context.Context) ([]reporting.FloorTables, error)
	ProfitLossShares(ctx context.Context) (reporting.Listing[models.ProfitLossShareTransaction], error)
	IndividualShareReport(ctx context.Context, shareUserID int) (reporting.IndividualShareReport, error)
	Snapshot(ctx context.Context, day time.Time) (models.DailySnapshot, error)
	SnapshotHistory(ctx context.Context, from, to time.Time) ([]models.DailySnapshot, error)
	Orders(ctx context.Context, query backend.Query) (reporting.Listing[models.Order], error)
	Bills(ctx context.Context, query backend.Query) (reporting.Listing[models.Bill], error)
	CreditHistory(ctx context.Context, creditUserID int) (reporting.Listing[models.CreditTransaction], error)
	MessHistory(ctx context.Context, messID int) (reporting.Listing[models.MessTransaction], error)
	SharePayments(ctx context.Context, shareUserTransactionID int) (reporting.Listing[models.SharePayment], error)
}

// ReportHandler serves report endpoints.
type ReportHandler struct {
	svc    ReportService
	logger *zap.Logger
	now    func() time.Time
}

// NewReportHandler constructs the report handler.
func NewReportHandler(svc ReportService, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger, now: time.Now}
}

// Ledgers lists every ledger.
func (h *ReportHandler) Ledgers(c *gin.Context) {
	ledgers, err := h.svc.Ledgers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "ledgers", err)
		return
	}
	c.JSON(http.StatusOK, ledgers)
}

// LedgerReport returns one ledger's statement with running totals.
func (h *ReportHandler) LedgerReport(c *gin.Context) {
	ledger := c.Query("ledger")
	if ledger == "" {
		badRequest(c, "ledger", "required")
		return
	}
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	report, err := h.svc.LedgerReport(c.Request.Context(), ledger, from, to)
	if err != nil {
		respondError(c, h.logger, "ledger report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) DayBook(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	book, err := h.svc.DayBook(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, h.logger, "day book", err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *ReportHandler) IncomeStatement(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	report, err := h.svc.IncomeStatement(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, h.logger, "income statement", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) BalanceSheet(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	report, err := h.svc.BalanceSheet(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, h.logger, "balance sheet", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Sales summarizes orders. order_status defaults to delivered in the service.
func (h *ReportHandler) Sales(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	filter := backend.SalesFilter{
		Query:         backend.Query{}.DateRange(from, to),
		OrderType:     c.Query("order_type"),
		PaymentMethod: c.Query("payment_method"),
		OrderStatus:   c.Query("order_status"),
	}

	report, err := h.svc.SalesSummary(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, "sales report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) Mess(c *gin.Context) {
	query, ok := filterQuery(c, "status")
	if !ok {
		return
	}

	report, err := h.svc.MessSummary(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, "mess report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) CreditUsers(c *gin.Context) {
	report, err := h.svc.CreditUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "credit users", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) Dining(c *gin.Context) {
	floors, err := h.svc.DiningOverview(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "dining overview", err)
		return
	}
	c.JSON(http.StatusOK, floors)
}

func (h *ReportHandler) Shares(c *gin.Context) {
	shares, err := h.svc.ProfitLossShares(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "profit/loss shares", err)
		return
	}
	c.JSON(http.StatusOK, shares)
}

func (h *ReportHandler) IndividualShares(c *gin.Context) {
	id, ok := pathID(c, "userID")
	if !ok {
		return
	}
	report, err := h.svc.IndividualShareReport(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "individual share report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Snapshot builds the daily snapshot for ?date= (today when absent). A snapshot
// that could not be stored or exported is still returned, with warnings.
func (h *ReportHandler) Snapshot(c *gin.Context) {
	day := h.now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, day.Location())
		if err != nil {
			badRequest(c, "date", "datetime="+dateLayout)
			return
		}
		day = parsed
	}

	snapshot, err := h.svc.Snapshot(c.Request.Context(), day)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"snapshot": snapshot})
		return
	}
	warnings := snapshotWarnings(err)
	if len(warnings) == 0 {
		respondError(c, h.logger, "snapshot", err)
		return
	}
	h.logger.Warn("snapshot incomplete", zap.Error(err))
	c.JSON(http.StatusOK, gin.H{"snapshot": snapshot, "warnings": warnings})
}

// snapshotWarnings lists the persistence steps that failed for a snapshot
// that was otherwise built.
func snapshotWarnings(err error) []string {
	if errors.Is(err, reporting.ErrSnapshotUnavailable) {
		return nil
	}
	var warnings []string
	for _, sentinel := range []error{reporting.ErrSnapshotNotStored, reporting.ErrSnapshotNotExported} {
		if errors.Is(err, sentinel) {
			warnings = append(warnings, sentinel.Error())
		}
	}
	return warnings
}

func (h *ReportHandler) Snapshots(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	history, err := h.svc.SnapshotHistory(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, h.logger, "snapshot history", err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// filterQuery copies the listed query parameters plus the date range.
func filterQuery(c *gin.Context, keys ...string) (backend.Query, bool) {
	from, to, ok := dateRange(c)
	if !ok {
		return nil, false
	}
	query := backend.Query{}.DateRange(from, to)
	for _, key := range keys {
		if v := c.Query(key); v != "" {
			query[key] = v
		}
	}
	return query, true
}

func (h *ReportHandler) Orders(c *gin.Context) {
	query, ok := filterQuery(c, "status", "order_type", "payment_method")
	if !ok {
		return
	}
	orders, err := h.svc.Orders(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, "orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *ReportHandler) Bills(c *gin.Context) {
	query, ok := filterQuery(c, "paid")
	if !ok {
		return
	}
	bills, err := h.svc.Bills(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, "bills", err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

func (h *ReportHandler) CreditHistory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	history, err := h.svc.CreditHistory(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "credit history", err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *ReportHandler) MessHistory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	history, err := h.svc.MessHistory(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "mess history", err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *ReportHandler) SharePayments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	payments, err := h.svc.SharePayments(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "share payments", err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
