// Package statement reads bank CSV statements into ledger rows.
package statement

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/aapnaincom/internal/encoding"
	"github.com/MrJamesThe3rd/aapnaincom/internal/ledger"
	"github.com/MrJamesThe3rd/aapnaincom/internal/money"
	"github.com/MrJamesThe3rd/aapnaincom/internal/transaction"
)

var (
	ErrUnknownFormat      = errors.New("no matching statement format found: expected HDFC, ICICI, SBI or Date/Description/Amount columns")
	ErrMalformed          = errors.New("statement is not valid CSV")
	ErrMissingDescription = errors.New("missing description")
)

// Parser auto-detects the bank layout by matching column headers against
// known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse returns one bank-payment row per statement line. Categories are left
// empty for the caller to fill.
func (p *Parser) Parse(r io.Reader) ([]ledger.RecordParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrUnknownFormat
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows skips rows without a parseable date or amount (separators,
// opening balance lines, footers).
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]ledger.RecordParams, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	var out []ledger.RecordParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		date, ok := parseDate(cellValue(row, dateIdx))
		if !ok {
			continue
		}

		amount, typ, ok := parseAmount(p, cols, row)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: %w", rowNum, ErrMissingDescription)
		}

		out = append(out, ledger.RecordParams{
			Amount:        amount,
			Date:          date,
			Description:   desc,
			Type:          typ,
			PaymentMethod: transaction.PaymentBank,
		})
	}

	return out, nil
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func parseAmount(p *Profile, cols colIndex, row []string) (int64, transaction.Type, bool) {
	switch p.AmountMode {
	case amountSingle:
		return parseSingleAmount(cellValue(row, cols[p.AmountCol]))
	case amountSplit:
		return parseSplitAmount(cellValue(row, cols[p.DebitCol]), cellValue(row, cols[p.CreditCol]))
	}

	return 0, "", false
}

func parseSingleAmount(s string) (int64, transaction.Type, bool) {
	paise, err := money.Parse(s)
	if err != nil || paise == 0 {
		return 0, "", false
	}

	if paise < 0 {
		return -paise, transaction.TypeExpense, true
	}

	return paise, transaction.TypeIncome, true
}

func parseSplitAmount(debit, credit string) (int64, transaction.Type, bool) {
	if paise, err := money.Parse(debit); err == nil && paise != 0 {
		return abs(paise), transaction.TypeExpense, true
	}

	if paise, err := money.Parse(credit); err == nil && paise != 0 {
		return abs(paise), transaction.TypeIncome, true
	}

	return 0, "", false
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
