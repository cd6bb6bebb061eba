// Package auditlog records rows the converter dropped or routed to suspense,
// so operators can reconcile them instead of losing them silently.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry is one row in the audit log.
type Entry struct {
	Date      string
	TrnsType  string
	Reference string
	Details   string
	Reason    string
	Amount    string
}

// Header is the CSV header for the audit log.
const Header = "date,type,reference,details,reason,amount"

const (
	numFields  = 6
	colDate    = 0
	colType    = 1
	colRef     = 2
	colDetails = 3
	colReason  = 4
	colAmount  = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colDate] = e.Date
	row[colType] = e.TrnsType
	row[colRef] = e.Reference
	row[colDetails] = e.Details
	row[colReason] = e.Reason
	row[colAmount] = e.Amount
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	return Entry{
		Date:      record[colDate],
		TrnsType:  record[colType],
		Reference: record[colRef],
		Details:   record[colDetails],
		Reason:    record[colReason],
		Amount:    record[colAmount],
	}, nil
}

// Append writes entries to the audit CSV at path, creating the file and
// header if needed.
func Append(path string, entries []Entry) error {
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from the audit CSV at path. Returns an empty slice
// if the file does not exist.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
