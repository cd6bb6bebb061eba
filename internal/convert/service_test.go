package convert

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/dtb2iif/internal/config"
	"github.com/ledgerline/dtb2iif/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var testDate = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func row(trnType, details string) model.StatementRow {
	return model.StatementRow{
		Type:      trnType,
		Date:      testDate,
		DateValid: true,
		Reference: "FT2503140001",
		Details:   details,
	}
}

func newTestConverter() *Converter {
	return New(config.Default(), log.New(io.Discard))
}

func TestRun_ScenarioBatch(t *testing.T) {
	vendorPayment := row("PESA LINK TRANSACTION", "X|Brookside Dairy Ltd|Y|invoice 123")
	vendorPayment.Debit = dec("1500")

	staffPayment := row("MOBILE BANKING FT TXN", "X|Rehema Jumwa|Y|lunch advance")
	staffPayment.Debit = dec("800")

	exciseDuty := row("EXCISE DUTY", "")
	exciseDuty.Charges = dec("50")

	mpesa := row("MPESA FUNDS TRANSFER", "internal move")
	mpesa.Debit = dec("300")

	badDate := row("PESA LINK TRANSACTION", "X|Somebody|Y|stuff")
	badDate.DateValid = false
	badDate.Debit = dec("100")

	incoming := row("INWARD REMITTANCE", "refund")
	incoming.Credit = dec("2000")

	rows := []model.StatementRow{vendorPayment, staffPayment, exciseDuty, mpesa, badDate, incoming}

	var out strings.Builder
	stats, audit, err := newTestConverter().Run(rows, &out)
	require.NoError(t, err)

	assert.Equal(t, 6, stats.RowsIn)
	assert.Equal(t, 4, stats.GroupsOut)
	assert.Equal(t, 1, stats.ExcludedType)
	assert.Equal(t, 1, stats.BadDate)
	assert.Equal(t, 0, stats.ZeroAmount)
	assert.Equal(t, 1, stats.Suspense)
	assert.Equal(t, 2, stats.Dropped())
	assert.Len(t, audit, 3)

	iif := out.String()
	assert.True(t, strings.HasPrefix(iif, "!TRNS\t"))
	assert.Contains(t, iif, "Brookside Dairy Ltd\t-1500.00\tinvoice 123")
	assert.Contains(t, iif, "Rehema Jumwa Muli")
	assert.Contains(t, iif, "EXCISE DUTY - General Supplier")
	assert.Contains(t, iif, "Suspense - Transfers")
	assert.NotContains(t, iif, "MPESA")
	assert.Equal(t, 4, strings.Count(iif, "\nENDTRNS\n"))
}

func TestRun_EmptyInputStillWritesHeader(t *testing.T) {
	var out strings.Builder
	stats, audit, err := newTestConverter().Run(nil, &out)
	require.NoError(t, err)

	assert.Zero(t, stats.RowsIn)
	assert.Empty(t, audit)
	assert.Contains(t, out.String(), "!ENDTRNS")
}

func TestRun_ZeroAmountRowDropped(t *testing.T) {
	var out strings.Builder
	stats, audit, err := newTestConverter().Run([]model.StatementRow{row("ODD TYPE", "nothing")}, &out)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.ZeroAmount)
	assert.Zero(t, stats.GroupsOut)
	require.Len(t, audit, 1)
	assert.Equal(t, "zero amount", audit[0].Reason)
}

func TestRun_AuditEntriesCarryRowFields(t *testing.T) {
	r := row("MPESA FUNDS TRANSFER", "internal move")
	r.Debit = dec("300")

	var out strings.Builder
	_, audit, err := newTestConverter().Run([]model.StatementRow{r}, &out)
	require.NoError(t, err)

	require.Len(t, audit, 1)
	assert.Equal(t, "excluded type", audit[0].Reason)
	assert.Equal(t, "2025-03-14", audit[0].Date)
	assert.Equal(t, "FT2503140001", audit[0].Reference)
	assert.Equal(t, "300.00", audit[0].Amount)
}
