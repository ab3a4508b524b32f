package sheets

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/messledger/internal/config"
)

// Exporter appends report rows to a spreadsheet.
type Exporter interface {
	AppendRows(ctx context.Context, sheetRange string, rows [][]interface{}) error
}

// GoogleSheetExporter appends rows through the Sheets API. Ranges registered
// with WithHeader get their header row written before the first export when
// the sheet is still empty.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger

	mu      sync.Mutex
	headers map[string][]interface{}
	checked map[string]bool
}

// ExporterOption configures a GoogleSheetExporter.
type ExporterOption func(*GoogleSheetExporter)

// WithHeader registers the header row for an append range such as "Daily!A:K".
func WithHeader(sheetRange string, header []interface{}) ExporterOption {
	return func(e *GoogleSheetExporter) { e.headers[sheetRange] = header }
}

// NewGoogleSheetExporter builds an exporter authenticated with the service
// account credentials file.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger, opts ...ExporterOption) (*GoogleSheetExporter, error) {
	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}
	return newExporter(service, cfg.SpreadsheetID, logger, opts...), nil
}

func newExporter(service *sheetsapi.Service, spreadsheetID string, logger *zap.Logger, opts ...ExporterOption) *GoogleSheetExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &GoogleSheetExporter{
		service:       service,
		spreadsheetID: spreadsheetID,
		logger:        logger,
		headers:       make(map[string][]interface{}),
		checked:       make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AppendRows appends rows below the last filled row of the range.
func (e *GoogleSheetExporter) AppendRows(ctx context.Context, sheetRange string, rows [][]interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}
	if len(rows) == 0 {
		return nil
	}

	header, err := e.missingHeader(ctx, sheetRange)
	if err != nil {
		return err
	}
	if header != nil {
		rows = append([][]interface{}{header}, rows...)
	}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, sheetRange, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append rows into range %s: %w", sheetRange, err)
	}

	e.mu.Lock()
	e.checked[sheetRange] = true
	e.mu.Unlock()

	e.logger.Debug("rows appended to sheet", zap.String("range", sheetRange), zap.Int("rows", len(rows)))
	return nil
}

// missingHeader returns the registered header when the sheet's first row is
// empty. The sheet is read at most once per range.
func (e *GoogleSheetExporter) missingHeader(ctx context.Context, sheetRange string) ([]interface{}, error) {
	e.mu.Lock()
	header, ok := e.headers[sheetRange]
	done := e.checked[sheetRange]
	e.mu.Unlock()
	if !ok || done {
		return nil, nil
	}

	firstRow := headerRange(sheetRange)
	resp, err := e.service.Spreadsheets.Values.Get(e.spreadsheetID, firstRow).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", firstRow, err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		e.mu.Lock()
		e.checked[sheetRange] = true
		e.mu.Unlock()
		return nil, nil
	}

	e.logger.Info("writing sheet header", zap.String("range", sheetRange))
	return header, nil
}

// headerRange turns "Daily!A:K" into "Daily!A1:K1".
func headerRange(sheetRange string) string {
	sheet, cols, found := strings.Cut(sheetRange, "!")
	if !found {
		return sheetRange
	}
	from, to, found := strings.Cut(cols, ":")
	if !found {
		return sheet + "!" + from + "1"
	}
	return fmt.Sprintf("%s!%s1:%s1", sheet, from, to)
}
