package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssra-dev/revenue/internal/ledger"
	"github.com/ssra-dev/revenue/internal/model"
)

func TestDefaultBillsLoad(t *testing.T) {
	l, err := ledger.New(DefaultBills())
	require.NoError(t, err)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, "175000", l.Outstanding().String())
	assert.Equal(t, "75000", l.Paid().String())
}

func TestDefaultBillsStatuses(t *testing.T) {
	statuses := make(map[model.BillStatus]int)
	for _, b := range DefaultBills() {
		statuses[b.Status]++
		assert.NotEmpty(t, b.PRN, "bill %d missing PRN", b.ID)
	}
	assert.Equal(t, 1, statuses[model.StatusPending])
	assert.Equal(t, 1, statuses[model.StatusPaid])
	assert.Equal(t, 1, statuses[model.StatusOverdue])
}

func TestDefaultBillsDoNotShareBankDetails(t *testing.T) {
	a := DefaultBills()
	b := DefaultBills()
	a[0].BankDetails.AccountNumber = "0"
	assert.Equal(t, "1234567890", b[0].BankDetails.AccountNumber)
}

func TestDefaultTaxTypes(t *testing.T) {
	types := DefaultTaxTypes()
	require.NotEmpty(t, types)
	assert.Equal(t, "Income Tax", types[0].Name)
	assert.Equal(t, "15", types[0].Rate.String())
	for _, tt := range types {
		assert.NotEmpty(t, tt.Name)
		assert.True(t, tt.Rate.IsPositive(), "%s rate", tt.Name)
	}
}
