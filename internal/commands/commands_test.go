package commands_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssra-dev/revenue/internal/activity"
	"github.com/ssra-dev/revenue/internal/ledger"
	"github.com/ssra-dev/revenue/internal/model"
)

var prnPattern = regexp.MustCompile(`SSRA\d{9}`)

func TestCommands_RequireWorkspace(t *testing.T) {
	_, err := runSSRA(t, "--dir", t.TempDir(), "bills")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ssra init")
}

func TestBills_ListsWithTotals(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runSSRA(t, "--dir", dir, "bills")
	require.NoError(t, err)
	assert.Contains(t, out, "Outstanding: SSP 175,000")
	assert.Contains(t, out, "Paid:        SSP 75,000")
	assert.Contains(t, out, "SSRA240315001")
	assert.Contains(t, out, "SSRA240401002")
	assert.Contains(t, out, "SSRA240228003")
}

func TestBills_StatusFilter(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runSSRA(t, "--dir", dir, "bills", "--status", "paid,overdue")
	require.NoError(t, err)
	assert.NotContains(t, out, "SSRA240315001")
	assert.Contains(t, out, "SSRA240401002")
	assert.Contains(t, out, "SSRA240228003")

	_, err = runSSRA(t, "--dir", dir, "bills", "--status", "cancelled")
	require.Error(t, err)
}

func TestBills_Search(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runSSRA(t, "--dir", dir, "bills", "--search", "property")
	require.NoError(t, err)
	assert.Contains(t, out, "SSRA240228003")
	assert.NotContains(t, out, "SSRA240315001")
}

func TestBills_EmptyWorkspace(t *testing.T) {
	dir := initWorkspace(t, "--empty")

	out, err := runSSRA(t, "--dir", dir, "bills")
	require.NoError(t, err)
	assert.Contains(t, out, "Outstanding: SSP 0")
	assert.Contains(t, out, "No bills.")
}

func TestEstimate_DoesNotIssueBill(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runSSRA(t, "--dir", dir, "estimate", "--income", "1,000,000", "--deductions", "200000")
	require.NoError(t, err)
	assert.Contains(t, out, "Tax type:       Income Tax")
	assert.Contains(t, out, "Taxable income: SSP 800,000.00")
	assert.Contains(t, out, "Rate:           15%")
	assert.Contains(t, out, "Estimated tax:  SSP 120,000")

	assert.Equal(t, 3, readLedger(t, dir).Len())
}

func TestEstimate_RateOverride(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runSSRA(t, "--dir", dir, "estimate", "--type", "Sales Tax", "--income", "100000", "--rate", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "Estimated tax:  SSP 20,000")
}

func TestAssess_IssuesPendingBill(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runSSRA(t, "--dir", dir, "assess", "--type", "Business Tax", "--income", "500000", "--deductions", "100000")
	require.NoError(t, err)
	assert.Contains(t, out, "Estimated tax:  SSP 40,000")
	assert.Contains(t, out, "Bill 4 issued")
	require.Regexp(t, prnPattern, out)

	l := readLedger(t, dir)
	require.Equal(t, 4, l.Len())
	head := l.All()[0]
	assert.Equal(t, model.BillID(4), head.ID)
	assert.Equal(t, "Business Tax Assessment", head.Description)
	assert.Equal(t, model.StatusPending, head.Status)
	assert.Equal(t, "40000", head.Amount.String())
	assert.Equal(t, prnPattern.FindString(out), head.PRN)
	require.NotNil(t, head.BankDetails)
	assert.Equal(t, "BOSSSSJU", head.BankDetails.SwiftCode)
	assert.Equal(t, "215000", l.Outstanding().String())

	entries, err := activity.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, activity.ActionBillCreated, entries[0].Action)
	assert.Equal(t, head.PRN, entries[0].PRN)
}

func TestAssess_SequentialPRNsAreUnique(t *testing.T) {
	dir := initWorkspace(t, "--empty")

	for range 3 {
		_, err := runSSRA(t, "--dir", dir, "assess", "--income", "1000")
		require.NoError(t, err)
	}

	seen := map[string]bool{}
	for _, b := range readLedger(t, dir).All() {
		assert.False(t, seen[b.PRN], "duplicate PRN %s", b.PRN)
		seen[b.PRN] = true
	}
	assert.Len(t, seen, 3)
}

func TestShow_PaymentDetails(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runSSRA(t, "--dir", dir, "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Payment Reference Number: SSRA240315001")
	assert.Contains(t, out, "Bank Name:      Bank of South Sudan")
	assert.Contains(t, out, "Account Number: 1234567890")
	assert.Contains(t, out, "SWIFT Code:     BOSSSSJU")
	assert.Contains(t, out, "2. Transfer the exact amount: SSP 125,000")
	assert.Contains(t, out, "4. Payment will be processed within 24 hours")
}

func TestShow_PaidBillHasNoInstructions(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runSSRA(t, "--dir", dir, "show", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: paid")
	assert.NotContains(t, out, "Payment Instructions")
}

func TestShow_Errors(t *testing.T) {
	dir := initWorkspace(t)

	_, err := runSSRA(t, "--dir", dir, "show", "99")
	require.ErrorIs(t, err, ledger.ErrNotFound)

	_, err = runSSRA(t, "--dir", dir, "show", "abc")
	require.Error(t, err)
}

func TestPay(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runSSRA(t, "--dir", dir, "pay", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Bill 1 paid (SSP 125,000, PRN SSRA240315001)")

	l := readLedger(t, dir)
	b, err := l.Get(1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, b.Status)
	assert.Equal(t, "50000", l.Outstanding().String())
}

func TestPay_TerminalStatusRejected(t *testing.T) {
	dir := initWorkspace(t)

	_, err := runSSRA(t, "--dir", dir, "pay", "3")
	require.ErrorIs(t, err, ledger.ErrInvalidTransition)

	_, err = runSSRA(t, "--dir", dir, "pay", "42")
	require.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestOverdue_ByID(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runSSRA(t, "--dir", dir, "overdue", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Bill 1 overdue (due 2024-03-15)")

	b, err := readLedger(t, dir).Get(1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOverdue, b.Status)
}

func TestOverdue_AsOf(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runSSRA(t, "--dir", dir, "overdue", "--as-of", "2024-03-15")
	require.NoError(t, err)
	assert.Contains(t, out, "No bills changed.")

	out, err = runSSRA(t, "--dir", dir, "overdue", "--as-of", "2024-03-16")
	require.NoError(t, err)
	assert.Contains(t, out, "Bill 1 overdue")

	_, err = runSSRA(t, "--dir", dir, "overdue", "--as-of", "16/03/2024")
	require.Error(t, err)
}

func TestPRN(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runSSRA(t, "--dir", dir, "prn", "--date", "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "SSRA240315002\n", out)

	_, err = runSSRA(t, "--dir", dir, "prn", "--date", "yesterday")
	require.Error(t, err)
}

func TestPRN_IsPreviewOnly(t *testing.T) {
	dir := initWorkspace(t)

	first, err := runSSRA(t, "--dir", dir, "prn", "--date", "2024-03-15")
	require.NoError(t, err)
	second, err := runSSRA(t, "--dir", dir, "prn", "--date", "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 3, readLedger(t, dir).Len())

	help, err := runSSRA(t, "--dir", dir, "prn", "--help")
	require.NoError(t, err)
	assert.Contains(t, help, "not recorded")
}

func TestReconcile_File(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runSSRA(t, "--dir", dir, "reconcile", filepath.Join("..", "..", "testdata", "statement.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "paid       bill 1  SSRA240315001")
	assert.Contains(t, out, "unmatched  SSRA240228003")
	assert.Contains(t, out, "bill 3 is overdue")
	assert.Contains(t, out, "unknown PRN")
	assert.Contains(t, out, "1 settled, 2 unmatched")

	b, err := readLedger(t, dir).Get(1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, b.Status)
}

func TestReconcile_Inbox(t *testing.T) {
	dir := initWorkspace(t)

	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "statement.csv"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "statements", "march.csv"), data, 0o644))

	out, err := runSSRA(t, "--dir", dir, "reconcile")
	require.NoError(t, err)
	assert.Contains(t, out, "march.csv:")
	assert.Contains(t, out, "1 settled, 2 unmatched")

	_, err = os.Stat(filepath.Join(dir, "statements", "processed", "march.csv"))
	require.NoError(t, err)

	out, err = runSSRA(t, "--dir", dir, "reconcile")
	require.NoError(t, err)
	assert.Contains(t, out, "No statements to reconcile.")

	entries, err := activity.Read(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "one settlement and two unmatched remittances")
}

func TestReconcile_UnknownFormat(t *testing.T) {
	dir := initWorkspace(t)

	_, err := runSSRA(t, "--dir", dir, "reconcile", "--format", "swift")
	require.Error(t, err)
}
