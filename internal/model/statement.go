package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementRow represents a parsed DTB statement row.
type StatementRow struct {
	Type       string // bank transaction type label (PESA LINK TRANSACTION, etc.)
	Date       time.Time
	DateValid  bool // false when the statement date could not be parsed
	Reference  string
	Details    string // free text, pipe-delimited sub-fields
	Debit      decimal.Decimal
	Credit     decimal.Decimal
	Charges    decimal.Decimal
	Commission decimal.Decimal
}

// Fees returns charges plus commission.
func (r StatementRow) Fees() decimal.Decimal {
	return r.Charges.Add(r.Commission)
}
