// Package convert wires the row source, identity resolver, classifier, and
// IIF emitter into a single statement conversion run.
package convert

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/ledgerline/dtb2iif/internal/alias"
	"github.com/ledgerline/dtb2iif/internal/auditlog"
	"github.com/ledgerline/dtb2iif/internal/classify"
	"github.com/ledgerline/dtb2iif/internal/config"
	"github.com/ledgerline/dtb2iif/internal/iif"
	"github.com/ledgerline/dtb2iif/internal/model"
	"github.com/ledgerline/dtb2iif/internal/resolve"
)

// RunStats counts what happened to the rows of one conversion run.
type RunStats struct {
	RowsIn       int
	GroupsOut    int
	ExcludedType int
	BadDate      int
	ZeroAmount   int
	Suspense     int
}

// Dropped returns the total number of rows that produced no postings.
func (s RunStats) Dropped() int {
	return s.ExcludedType + s.BadDate + s.ZeroAmount
}

// Converter holds the immutable per-run machinery. Rows are independent, so a
// Converter is safe for concurrent use; this implementation processes them in
// input order.
type Converter struct {
	resolver   *resolve.Resolver
	classifier *classify.Classifier
	logger     *log.Logger
}

// New builds a Converter from configuration. The alias index is derived once
// here and read-only thereafter.
func New(cfg *config.Config, logger *log.Logger) *Converter {
	index := alias.Build(cfg.Vendors, cfg.Overrides)
	return &Converter{
		resolver:   resolve.New(cfg.Vendors, cfg.Staff, index, cfg.Threshold),
		classifier: classify.New(cfg.Accounts, cfg.Types),
		logger:     logger,
	}
}

// Run converts rows to IIF on out. Every emitted group is re-verified against
// the double-entry invariant before writing; a violation aborts the run.
// Dropped and suspense-routed rows come back as audit entries.
func (c *Converter) Run(rows []model.StatementRow, out io.Writer) (RunStats, []auditlog.Entry, error) {
	w := iif.NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return RunStats{}, nil, err
	}

	var stats RunStats
	var audit []auditlog.Entry
	for i, row := range rows {
		stats.RowsIn++

		identity := c.resolver.Resolve(row.Details)
		result := c.classifier.Classify(row, identity)

		switch result.Outcome {
		case classify.OutcomeExcludedType:
			stats.ExcludedType++
			audit = append(audit, auditEntry(row, "excluded type"))
			c.logger.Debug("dropped row", "row", i+1, "rule", result.Rule, "type", row.Type)
		case classify.OutcomeBadDate:
			stats.BadDate++
			audit = append(audit, auditEntry(row, "unparseable date"))
			c.logger.Warn("dropped row with unparseable date", "row", i+1, "reference", row.Reference)
		case classify.OutcomeZeroAmount:
			stats.ZeroAmount++
			audit = append(audit, auditEntry(row, "zero amount"))
			c.logger.Debug("dropped row", "row", i+1, "rule", result.Rule, "type", row.Type)
		case classify.OutcomeEmitted:
			for _, g := range result.Groups {
				if err := classify.VerifyBalanced(g); err != nil {
					return stats, audit, fmt.Errorf("row %d: %w", i+1, err)
				}
				if err := w.WriteGroup(g); err != nil {
					return stats, audit, fmt.Errorf("row %d: %w", i+1, err)
				}
				stats.GroupsOut++
			}
			if result.Suspense {
				stats.Suspense++
				audit = append(audit, auditEntry(row, "routed to suspense"))
				c.logger.Info("routed to suspense", "row", i+1, "rule", result.Rule, "payee", identity.Payee)
			}
		}
	}

	return stats, audit, nil
}

func auditEntry(row model.StatementRow, reason string) auditlog.Entry {
	date := ""
	if row.DateValid {
		date = row.Date.Format("2006-01-02")
	}
	amount := row.Debit
	if !amount.IsPositive() {
		amount = row.Credit
	}
	if !amount.IsPositive() {
		amount = row.Fees()
	}
	return auditlog.Entry{
		Date:      date,
		TrnsType:  row.Type,
		Reference: row.Reference,
		Details:   row.Details,
		Reason:    reason,
		Amount:    amount.StringFixed(2),
	}
}
