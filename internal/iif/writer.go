// Package iif renders posting groups in the QuickBooks IIF interchange
// format. The layout is a fixed wire format: tab-delimited, a three-line
// header block, then TRNS/SPL rows framed by ENDTRNS markers.
package iif

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledgerline/dtb2iif/internal/model"
)

const dateFormat = "01/02/2006"

var headerLines = []string{
	"!TRNS\tTRNSTYPE\tDATE\tACCNT\tNAME\tAMOUNT\tMEMO\tDOCNUM\tCLEAR",
	"!SPL\tTRNSTYPE\tDATE\tACCNT\tNAME\tAMOUNT\tMEMO\tDOCNUM\tCLEAR",
	"!ENDTRNS",
}

// Writer emits IIF to an underlying stream. The header block is written once,
// before the first group.
type Writer struct {
	w          io.Writer
	headerDone bool
}

// NewWriter wraps an output stream.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteHeader writes the IIF header block. It is called implicitly by the
// first WriteGroup and is a no-op on repeat calls.
func (w *Writer) WriteHeader() error {
	if w.headerDone {
		return nil
	}
	for _, line := range headerLines {
		if _, err := fmt.Fprintln(w.w, line); err != nil {
			return fmt.Errorf("writing IIF header: %w", err)
		}
	}
	w.headerDone = true
	return nil
}

// WriteGroup writes one balanced group: the first posting as the TRNS row,
// the rest as SPL rows, then the ENDTRNS marker.
func (w *Writer) WriteGroup(g model.PostingGroup) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}
	for i, p := range g.Postings {
		tag := "SPL"
		if i == 0 {
			tag = "TRNS"
		}
		if _, err := fmt.Fprintln(w.w, postingLine(tag, p)); err != nil {
			return fmt.Errorf("writing %s row: %w", tag, err)
		}
	}
	if _, err := fmt.Fprintln(w.w, "ENDTRNS"); err != nil {
		return fmt.Errorf("writing ENDTRNS: %w", err)
	}
	return nil
}

func postingLine(tag string, p model.Posting) string {
	cleared := "N"
	if p.Cleared {
		cleared = "Y"
	}
	return strings.Join([]string{
		tag,
		field(p.TrnsType),
		p.Date.Format(dateFormat),
		field(p.Account),
		field(p.Name),
		p.Amount.StringFixed(2),
		field(p.Memo),
		field(p.DocNum),
		cleared,
	}, "\t")
}

// field flattens characters that would break the tab-delimited layout.
func field(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t':
			return ' '
		case '\n', '\r':
			return -1
		}
		return r
	}, s)
}
