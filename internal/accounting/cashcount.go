package accounting

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/messledger/internal/domain/models"
)

// Denominations are the notes and coins counted on a cash sheet, largest first.
var Denominations = []int{500, 200, 100, 50, 10, 5, 1}

var (
	// ErrEmptyCashCount means no denomination had a positive count.
	ErrEmptyCashCount = errors.New("at least one denomination count must be greater than zero")
	// ErrUnknownDenomination means a row used a note value outside Denominations.
	ErrUnknownDenomination = errors.New("unknown denomination")
)

const dateLayout = "2006-01-02"

// CashCountRow is a counted denomination as entered by the cashier.
type CashCountRow struct {
	Currency int `json:"currency"`
	Nos      int `json:"nos"`
}

// CashCount is the validated set of rows ready for submission.
type CashCount struct {
	Items      []models.CashCountItem `json:"items"`
	GrandTotal models.Amount          `json:"grand_total"`
}

// CountCash prices every row and drops rows whose count is not positive. It
// fails when nothing remains.
func CountCash(rows []CashCountRow) (CashCount, error) {
	items := make([]models.CashCountItem, 0, len(rows))
	total := decimal.Zero

	for _, row := range rows {
		if !isDenomination(row.Currency) {
			return CashCount{}, fmt.Errorf("%w: %d", ErrUnknownDenomination, row.Currency)
		}
		if row.Nos <= 0 {
			continue
		}
		amount := decimal.NewFromInt(int64(row.Currency) * int64(row.Nos))
		total = total.Add(amount)
		items = append(items, models.CashCountItem{
			Currency: row.Currency,
			Nos:      row.Nos,
			Amount:   models.NewAmount(amount),
		})
	}

	if len(items) == 0 {
		return CashCount{}, ErrEmptyCashCount
	}

	return CashCount{Items: items, GrandTotal: models.NewAmount(total)}, nil
}

func isDenomination(value int) bool {
	for _, d := range Denominations {
		if d == value {
			return true
		}
	}
	return false
}

// DenominationCount is the net number of notes of one value.
type DenominationCount struct {
	Currency int `json:"currency"`
	Nos      int `json:"nos"`
}

// DayBook is the cash movement over a date range.
type DayBook struct {
	Sheets        []models.CashCountSheet `json:"sheets"`
	Denominations []DenominationCount     `json:"denominations"`
	CashIn        models.Amount           `json:"cash_in"`
	CashOut       models.Amount           `json:"cash_out"`
	Net           models.Amount           `json:"net"`
	Malformed     int                     `json:"malformed_amounts"`
}

// BuildDayBook keeps the sheets whose calendar date lies within [from, to],
// groups them by date (dates in order of first appearance) and orders each
// date's sheets by transaction type. Pay-ins add to the denomination counts and
// the net total, pay-outs subtract. Sheets with an unreadable date are left
// out. A zero bound is open.
func BuildDayBook(sheets []models.CashCountSheet, from, to time.Time) DayBook {
	var dates []string
	byDate := make(map[string][]models.CashCountSheet)

	for _, sheet := range sheets {
		day, err := time.Parse(dateLayout, trimDate(sheet.CreatedDate))
		if err != nil {
			continue
		}
		key := day.Format(dateLayout)
		if (!from.IsZero() && key < from.Format(dateLayout)) || (!to.IsZero() && key > to.Format(dateLayout)) {
			continue
		}
		if _, ok := byDate[key]; !ok {
			dates = append(dates, key)
		}
		byDate[key] = append(byDate[key], sheet)
	}

	counts := make(map[int]int, len(Denominations))
	in, out := decimal.Zero, decimal.Zero
	malformed := 0
	ordered := make([]models.CashCountSheet, 0, len(sheets))

	for _, date := range dates {
		group := byDate[date]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].TransactionType < group[j].TransactionType
		})

		for _, sheet := range group {
			sign := -1
			if sheet.TransactionType == models.CashPayIn {
				sign = 1
			}
			for _, item := range sheet.Items {
				if isDenomination(item.Currency) {
					counts[item.Currency] += item.Nos * sign
				}
			}
			if sheet.Amount.Malformed() {
				malformed++
			}
			if sign > 0 {
				in = in.Add(sheet.Amount.Decimal())
			} else {
				out = out.Add(sheet.Amount.Decimal())
			}
			ordered = append(ordered, sheet)
		}
	}

	denominations := make([]DenominationCount, 0, len(Denominations))
	for _, d := range Denominations {
		denominations = append(denominations, DenominationCount{Currency: d, Nos: counts[d]})
	}

	return DayBook{
		Sheets:        ordered,
		Denominations: denominations,
		CashIn:        models.NewAmount(in),
		CashOut:       models.NewAmount(out),
		Net:           models.NewAmount(in.Sub(out)),
		Malformed:     malformed,
	}
}

func trimDate(value string) string {
	if len(value) > len(dateLayout) {
		return value[:len(dateLayout)]
	}
	return value
}
