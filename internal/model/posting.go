package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Posting is a single signed entry against one account (one side of a
// double-entry).
type Posting struct {
	TrnsType string // destination transaction type (CHECK, TRANSFER)
	Date     time.Time
	Account  string
	Name     string
	Amount   decimal.Decimal // negative = money out of the account
	Memo     string
	DocNum   string
	Cleared  bool
}

// PostingGroup is an ordered, non-empty set of postings representing one
// bank transaction. A well-formed group sums to exactly zero.
type PostingGroup struct {
	Postings []Posting
}

// Sum returns the sum of all posting amounts in the group.
func (g PostingGroup) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, p := range g.Postings {
		total = total.Add(p.Amount)
	}
	return total
}
