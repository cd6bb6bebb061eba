package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/dtb2iif/internal/model"
)

// DTBParser parses Diamond Trust Bank account statement CSV exports.
// Statements carry a preamble of letterhead rows before the column header;
// the parser skips rows until it sees the header.
type DTBParser struct{}

const (
	dtbNumFields   = 8
	dtbHeaderFirst = "Transaction Type"
	colType        = 0
	colDate        = 1
	colRef         = 2
	colDetails     = 3
	colDebit       = 4
	colCredit      = 5
	colCharges     = 6
	colCommission  = 7
)

// Statement dates are locale-ambiguous; month-first layouts are tried before
// the unambiguous forms. A date parsing under none of these marks the row
// date-invalid, and the classifier drops it.
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006-01-02",
	"02-Jan-2006",
}

// Format returns the parser name.
func (p *DTBParser) Format() string { return "dtb" }

// Parse reads a DTB statement CSV and returns StatementRows. Rows before the
// column header and blank rows are skipped; monetary cells are coerced to
// non-negative decimals defaulting to zero.
func (p *DTBParser) Parse(r io.Reader) ([]model.StatementRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // preamble rows have varying widths

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading DTB statement CSV: %w", err)
	}

	start := headerIndex(records)
	if start < 0 {
		return nil, fmt.Errorf("no %q header row found", dtbHeaderFirst)
	}

	var rows []model.StatementRow
	for _, rec := range records[start+1:] {
		if blankRecord(rec) {
			continue
		}
		rows = append(rows, parseDTBRow(rec))
	}
	return rows, nil
}

// headerIndex returns the index of the column header row, or -1.
func headerIndex(records [][]string) int {
	for i, rec := range records {
		if len(rec) >= dtbNumFields && strings.TrimSpace(rec[colType]) == dtbHeaderFirst {
			return i
		}
	}
	return -1
}

func parseDTBRow(rec []string) model.StatementRow {
	date, ok := parseDate(cell(rec, colDate))
	return model.StatementRow{
		Type:       strings.TrimSpace(cell(rec, colType)),
		Date:       date,
		DateValid:  ok,
		Reference:  strings.TrimSpace(cell(rec, colRef)),
		Details:    strings.TrimSpace(cell(rec, colDetails)),
		Debit:      parseAmount(cell(rec, colDebit)),
		Credit:     parseAmount(cell(rec, colCredit)),
		Charges:    parseAmount(cell(rec, colCharges)),
		Commission: parseAmount(cell(rec, colCommission)),
	}
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount coerces a statement cell to a non-negative decimal. Thousands
// separators are stripped; blank, unparseable, or negative cells default to
// zero per the row-source contract.
func parseAmount(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func cell(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

func blankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
