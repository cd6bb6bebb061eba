package auditlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(ref, reason string) Entry {
	return Entry{
		Date:      "2025-03-14",
		TrnsType:  "PESA LINK TRANSACTION",
		Reference: ref,
		Details:   "X|Somebody|Y|invoice",
		Reason:    reason,
		Amount:    "1500.00",
	}
}

func TestAppend_CreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.csv")
	require.NoError(t, Append(path, []Entry{testEntry("FT1", "excluded type")}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), Header))
}

func TestAppend_HeaderWrittenOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.csv")
	require.NoError(t, Append(path, []Entry{testEntry("FT1", "excluded type")}))
	require.NoError(t, Append(path, []Entry{testEntry("FT2", "unparseable date")}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "date,type"))
}

func TestReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.csv")
	want := []Entry{testEntry("FT1", "excluded type"), testEntry("FT2", "routed to suspense")}
	require.NoError(t, Append(path, want))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Empty(t, got)
}
