package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

type fakeSheet struct {
	mu       sync.Mutex
	firstRow [][]interface{}
	gets     int
	appended [][]interface{}
}

func (f *fakeSheet) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet:
			f.gets++
			_ = json.NewEncoder(w).Encode(map[string]any{"values": f.firstRow})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":append"):
			var body struct {
				Values [][]interface{} `json:"values"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			f.appended = append(f.appended, body.Values...)
			if len(f.firstRow) == 0 && len(body.Values) > 0 {
				f.firstRow = body.Values[:1]
			}
			_, _ = w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	}
}

func newTestExporter(t *testing.T, fake *fakeSheet, opts ...ExporterOption) *GoogleSheetExporter {
	t.Helper()
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	service, err := sheetsapi.NewService(context.Background(), option.WithEndpoint(srv.URL+"/"), option.WithoutAuthentication())
	require.NoError(t, err)
	return newExporter(service, "sheet-1", nil, opts...)
}

func TestAppendRows_WritesHeaderOnEmptySheet(t *testing.T) {
	fake := &fakeSheet{}
	exporter := newTestExporter(t, fake, WithHeader("Daily!A:C", []interface{}{"date", "cash_in", "cash_out"}))
	ctx := context.Background()

	require.NoError(t, exporter.AppendRows(ctx, "Daily!A:C", [][]interface{}{{"2024-03-01", "100.00", "0.00"}}))
	require.NoError(t, exporter.AppendRows(ctx, "Daily!A:C", [][]interface{}{{"2024-03-02", "50.00", "0.00"}}))

	require.Len(t, fake.appended, 3)
	assert.Equal(t, "date", fake.appended[0][0])
	assert.Equal(t, "2024-03-02", fake.appended[2][0])
	assert.Equal(t, 1, fake.gets)
}

func TestAppendRows_KeepsExistingHeader(t *testing.T) {
	fake := &fakeSheet{firstRow: [][]interface{}{{"date"}}}
	exporter := newTestExporter(t, fake, WithHeader("Daily!A:C", []interface{}{"date", "cash_in", "cash_out"}))

	require.NoError(t, exporter.AppendRows(context.Background(), "Daily!A:C", [][]interface{}{{"2024-03-01", "1", "2"}}))

	require.Len(t, fake.appended, 1)
	assert.Equal(t, "2024-03-01", fake.appended[0][0])
}

func TestAppendRows_NoHeaderRegistered(t *testing.T) {
	fake := &fakeSheet{}
	exporter := newTestExporter(t, fake)

	require.NoError(t, exporter.AppendRows(context.Background(), "Other!A:B", [][]interface{}{{"x", "y"}}))

	assert.Zero(t, fake.gets)
	assert.Len(t, fake.appended, 1)
}

func TestAppendRows_Validation(t *testing.T) {
	exporter := newTestExporter(t, &fakeSheet{})

	assert.Error(t, exporter.AppendRows(context.Background(), "", [][]interface{}{{"x"}}))
	assert.NoError(t, exporter.AppendRows(context.Background(), "Daily!A:K", nil))
}

func TestHeaderRange(t *testing.T) {
	assert.Equal(t, "Daily!A1:K1", headerRange("Daily!A:K"))
	assert.Equal(t, "Daily!A1", headerRange("Daily!A"))
	assert.Equal(t, "A:K", headerRange("A:K"))
}
