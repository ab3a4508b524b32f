package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/messledger/internal/domain/models"
	"github.com/mamadbah2/messledger/pkg/clients/backend"
)

// SnapshotSheetRange is the sheet range daily snapshots are appended to.
const SnapshotSheetRange = "Daily!A:K"

// SnapshotHeader names the columns written by the snapshot export.
var SnapshotHeader = []interface{}{
	"date", "cash_in", "cash_out", "cash_net", "total_income", "total_expenses",
	"net_profit", "net_loss", "sales_total", "sales_count", "malformed",
}

var (
	// ErrSnapshotsDisabled is returned when no snapshot store is configured.
	ErrSnapshotsDisabled = errors.New("snapshot store is not configured")
	// ErrSnapshotUnavailable is returned when none of the snapshot sections
	// could be loaded from the backend. Nothing is stored or exported.
	ErrSnapshotUnavailable = errors.New("snapshot data unavailable")
	// ErrSnapshotNotStored and ErrSnapshotNotExported mark a built snapshot
	// that could not be persisted.
	ErrSnapshotNotStored   = errors.New("snapshot was not stored")
	ErrSnapshotNotExported = errors.New("snapshot was not exported")
)

// Snapshot builds the end-of-day summary for the given day, stores it and
// exports it when those collaborators are configured. The snapshot is returned
// even when storing or exporting fails; the error then wraps
// ErrSnapshotNotStored or ErrSnapshotNotExported. When no section could be
// loaded the error wraps ErrSnapshotUnavailable.
func (s *Service) Snapshot(ctx context.Context, day time.Time) (models.DailySnapshot, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	var failures []error

	snapshot := models.DailySnapshot{
		Date:      start,
		CreatedAt: s.now().UTC(),
	}

	book, err := s.DayBook(ctx, start, start)
	if err != nil {
		failures = append(failures, err)
	} else {
		snapshot.CashIn = book.CashIn.String()
		snapshot.CashOut = book.CashOut.String()
		snapshot.CashNet = book.Net.String()
		snapshot.Malformed += book.Malformed
	}

	statement, err := s.IncomeStatement(ctx, start, start)
	if err != nil {
		failures = append(failures, err)
	} else {
		snapshot.TotalIncome = statement.TotalIncome.String()
		snapshot.TotalExpenses = statement.TotalExpenses.String()
		snapshot.NetProfit = statement.NetProfit.String()
		snapshot.NetLoss = statement.NetLoss.String()
		snapshot.Malformed += statement.Malformed
	}

	sales, err := s.SalesSummary(ctx, backend.SalesFilter{Query: backend.Query{}.DateRange(start, start)})
	if err != nil {
		failures = append(failures, err)
	} else {
		snapshot.SalesTotal = sales.Summary.Total.String()
		snapshot.SalesCount = sales.Summary.Count
		snapshot.Malformed += sales.Summary.Malformed
	}

	if len(failures) == 3 {
		return snapshot, fmt.Errorf("build snapshot for %s: %w: %w", start.Format(dateLayout), ErrSnapshotUnavailable, errors.Join(failures...))
	}
	for _, f := range failures {
		s.logger.Warn("snapshot section unavailable", zap.Time("date", start), zap.Error(f))
	}

	if s.snapshots != nil {
		if err := s.snapshots.SaveDailySnapshot(ctx, snapshot); err != nil {
			failures = append(failures, fmt.Errorf("%w: %w", ErrSnapshotNotStored, err))
		}
	}
	if s.exporter != nil {
		if err := s.exporter.AppendRows(ctx, SnapshotSheetRange, [][]interface{}{snapshotRow(snapshot)}); err != nil {
			failures = append(failures, fmt.Errorf("%w: %w", ErrSnapshotNotExported, err))
		}
	}

	s.logger.Info("daily snapshot built",
		zap.Time("date", start),
		zap.String("cash_net", snapshot.CashNet),
		zap.String("sales_total", snapshot.SalesTotal),
		zap.Int("malformed", snapshot.Malformed),
	)

	return snapshot, errors.Join(failures...)
}

// SnapshotHistory returns stored snapshots in a date range.
func (s *Service) SnapshotHistory(ctx context.Context, from, to time.Time) ([]models.DailySnapshot, error) {
	if s.snapshots == nil {
		return nil, ErrSnapshotsDisabled
	}
	snapshots, err := s.snapshots.ListSnapshots(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	return snapshots, nil
}

func snapshotRow(snapshot models.DailySnapshot) []interface{} {
	return []interface{}{
		snapshot.Date.Format(dateLayout),
		snapshot.CashIn,
		snapshot.CashOut,
		snapshot.CashNet,
		snapshot.TotalIncome,
		snapshot.TotalExpenses,
		snapshot.NetProfit,
		snapshot.NetLoss,
		snapshot.SalesTotal,
		snapshot.SalesCount,
		snapshot.Malformed,
	}
}

// FormatSummary renders a snapshot as a short text message.
func FormatSummary(snapshot models.DailySnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily summary %s\n", snapshot.Date.Format(dateLayout))
	fmt.Fprintf(&b, "Sales: %s (%d orders)\n", orDash(snapshot.SalesTotal), snapshot.SalesCount)
	fmt.Fprintf(&b, "Cash in/out: %s / %s, net %s\n", orDash(snapshot.CashIn), orDash(snapshot.CashOut), orDash(snapshot.CashNet))
	fmt.Fprintf(&b, "Income %s, expenses %s", orDash(snapshot.TotalIncome), orDash(snapshot.TotalExpenses))
	switch {
	case snapshot.NetProfit != "" && snapshot.NetProfit != "0.00":
		fmt.Fprintf(&b, ", profit %s", snapshot.NetProfit)
	case snapshot.NetLoss != "" && snapshot.NetLoss != "0.00":
		fmt.Fprintf(&b, ", loss %s", snapshot.NetLoss)
	}
	if snapshot.Malformed > 0 {
		fmt.Fprintf(&b, "\n%d amounts could not be read and were counted as zero.", snapshot.Malformed)
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
