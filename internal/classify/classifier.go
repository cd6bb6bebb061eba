// Package classify turns statement rows into balanced posting groups through
// an ordered decision list. Rules are evaluated top to bottom and the first
// matching rule fires exclusively.
package classify

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerline/dtb2iif/internal/model"
)

// docNumMax is the destination system's document number field length.
const docNumMax = 9

// Accounts names the ledger accounts postings are written against.
type Accounts struct {
	Bank             string `yaml:"bank"`
	Payables         string `yaml:"payables"`
	BankCharges      string `yaml:"bank_charges"`
	AskAccountant    string `yaml:"ask_accountant"`
	TransferSuspense string `yaml:"transfer_suspense"`
	BankChargesName  string `yaml:"bank_charges_name"` // counter-party label on fee postings
}

// TypeSets groups statement transaction types by treatment.
type TypeSets struct {
	Excluded      []string `yaml:"excluded"`       // dropped entirely (internal funds movements)
	BankCharge    []string `yaml:"bank_charge"`    // booked straight to the bank-charges expense
	AskAccountant []string `yaml:"ask_accountant"` // routed to the accountant's suspense account
	DebitTransfer []string `yaml:"debit_transfer"` // vendor payments booked against payables
}

// Outcome says what the decision list did with a row.
type Outcome int

const (
	OutcomeEmitted Outcome = iota
	OutcomeExcludedType
	OutcomeBadDate
	OutcomeZeroAmount
)

// Result carries the fired rule, the emitted group if any, and whether the
// group was routed to a suspense account.
type Result struct {
	Outcome  Outcome
	Rule     string
	Groups   []model.PostingGroup
	Suspense bool
}

type rule struct {
	name     string
	outcome  Outcome
	suspense bool
	match    func(model.StatementRow) bool
	emit     func(model.StatementRow, model.ResolvedIdentity) model.PostingGroup
}

// Classifier applies the decision list to statement rows. It is stateless
// across rows and safe for concurrent use.
type Classifier struct {
	accounts      Accounts
	excluded      map[string]bool
	bankCharge    map[string]bool
	askAccountant map[string]bool
	debitTransfer map[string]bool
	rules         []rule
}

// New builds a Classifier from account names and type sets.
func New(accounts Accounts, types TypeSets) *Classifier {
	c := &Classifier{
		accounts:      accounts,
		excluded:      toSet(types.Excluded),
		bankCharge:    toSet(types.BankCharge),
		askAccountant: toSet(types.AskAccountant),
		debitTransfer: toSet(types.DebitTransfer),
	}
	c.rules = []rule{
		{
			name:    "excluded-type",
			outcome: OutcomeExcludedType,
			match:   func(r model.StatementRow) bool { return c.excluded[r.Type] },
		},
		{
			name:    "unparseable-date",
			outcome: OutcomeBadDate,
			match:   func(r model.StatementRow) bool { return !r.DateValid },
		},
		{
			name:  "bank-charge-type",
			match: func(r model.StatementRow) bool { return c.bankCharge[r.Type] },
			emit:  c.emitBankCharge,
		},
		{
			name:     "ask-accountant-type",
			suspense: true,
			match:    func(r model.StatementRow) bool { return c.askAccountant[r.Type] },
			emit:     c.emitAskAccountant,
		},
		{
			name: "debit-transfer",
			match: func(r model.StatementRow) bool {
				return c.debitTransfer[r.Type] && r.Debit.IsPositive()
			},
			emit: c.emitPayable,
		},
		{
			name:     "unexpected-credit",
			suspense: true,
			match:    func(r model.StatementRow) bool { return r.Credit.IsPositive() },
			emit:     c.emitCreditSuspense,
		},
		{
			name:  "leftover-fees",
			match: func(r model.StatementRow) bool { return r.Fees().IsPositive() },
			emit:  c.emitLeftoverFees,
		},
		{
			name:  "fallback-debit",
			match: func(r model.StatementRow) bool { return r.Debit.IsPositive() },
			emit:  c.emitPayable,
		},
	}
	return c
}

// Classify runs the decision list over one row. At most one rule fires; rows
// matching no rule are zero-amount noise and are dropped without error.
func (c *Classifier) Classify(row model.StatementRow, id model.ResolvedIdentity) Result {
	for _, r := range c.rules {
		if !r.match(row) {
			continue
		}
		if r.emit == nil {
			return Result{Outcome: r.outcome, Rule: r.name}
		}
		return Result{
			Outcome:  OutcomeEmitted,
			Rule:     r.name,
			Groups:   []model.PostingGroup{r.emit(row, id)},
			Suspense: r.suspense,
		}
	}
	return Result{Outcome: OutcomeZeroAmount, Rule: "zero-amount"}
}

// pair builds a balanced two-posting group: the bank leg first, then the
// contra leg with the opposite sign.
func (c *Classifier) pair(trnsType string, row model.StatementRow, name string, bankAmount decimal.Decimal, contra, memo string) model.PostingGroup {
	doc := DocNum(row.Reference)
	return model.PostingGroup{Postings: []model.Posting{
		{
			TrnsType: trnsType,
			Date:     row.Date,
			Account:  c.accounts.Bank,
			Name:     name,
			Amount:   bankAmount,
			Memo:     memo,
			DocNum:   doc,
		},
		{
			TrnsType: trnsType,
			Date:     row.Date,
			Account:  contra,
			Name:     name,
			Amount:   bankAmount.Neg(),
			Memo:     memo,
			DocNum:   doc,
		},
	}}
}

// emitBankCharge books explicit bank-charge types against the charges expense
// account. The amount is the debit when present, otherwise charges plus
// commission.
func (c *Classifier) emitBankCharge(row model.StatementRow, id model.ResolvedIdentity) model.PostingGroup {
	amount := row.Debit
	if !amount.IsPositive() {
		amount = row.Fees()
	}
	memo := row.Type + " - " + id.Payee
	return c.pair("CHECK", row, c.accounts.BankChargesName, amount.Neg(), c.accounts.BankCharges, memo)
}

// emitAskAccountant routes types the operator must review into the
// accountant's suspense account.
func (c *Classifier) emitAskAccountant(row model.StatementRow, id model.ResolvedIdentity) model.PostingGroup {
	amount := row.Debit
	if !amount.IsPositive() {
		amount = row.Credit
	}
	return c.pair("CHECK", row, id.Payee, amount.Neg(), c.accounts.AskAccountant, id.Memo)
}

// emitPayable books a vendor payment against accounts payable.
func (c *Classifier) emitPayable(row model.StatementRow, id model.ResolvedIdentity) model.PostingGroup {
	return c.pair("CHECK", row, id.Payee, row.Debit.Neg(), c.accounts.Payables, id.Memo)
}

// emitCreditSuspense routes unexpected incoming funds to the transfer
// suspense account for manual reconciliation instead of dropping them.
func (c *Classifier) emitCreditSuspense(row model.StatementRow, id model.ResolvedIdentity) model.PostingGroup {
	return c.pair("TRANSFER", row, id.Payee, row.Credit, c.accounts.TransferSuspense, id.Memo)
}

// emitLeftoverFees books charges and commission not already handled by an
// earlier rule.
func (c *Classifier) emitLeftoverFees(row model.StatementRow, id model.ResolvedIdentity) model.PostingGroup {
	memo := "Bank charges & commissions - " + id.Payee
	return c.pair("CHECK", row, c.accounts.BankChargesName, row.Fees().Neg(), c.accounts.BankCharges, memo)
}

// DocNum derives the destination document number: the reference
// right-truncated to its last 9 characters when longer.
func DocNum(ref string) string {
	if len(ref) > docNumMax {
		return ref[len(ref)-docNumMax:]
	}
	return ref
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}
