package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Billing.PRNSequence = "checked"
	cfg.Assessment.TaxTypes = append(cfg.Assessment.TaxTypes, TaxTypeConfig{Name: "Excise Duty", Rate: "12.5"})

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Authority.Name, got.Authority.Name)
	assert.Equal(t, cfg.Currency, got.Currency)
	assert.Equal(t, 30, got.Billing.DueDays)
	assert.Equal(t, "checked", got.Billing.PRNSequence)
	assert.Equal(t, 10, got.Billing.PRNMaxAttempts)
	assert.Equal(t, cfg.Assessment.TaxTypes, got.Assessment.TaxTypes)
	assert.Equal(t, cfg.Remittance, got.Remittance)
	assert.Equal(t, cfg.Logging, got.Logging)

	rate, ok := got.Assessment.Rate("Excise Duty")
	require.True(t, ok)
	assert.Equal(t, "12.5", rate)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "South Sudan Revenue Authority", cfg.Authority.Name)
	assert.Equal(t, "SSP", cfg.Currency)
	assert.Equal(t, 30, cfg.Billing.DueDays)
	assert.Equal(t, "counter", cfg.Billing.PRNSequence)
	assert.Equal(t, "Income Tax", cfg.Assessment.DefaultTaxType)

	rate, ok := cfg.Assessment.Rate("Income Tax")
	require.True(t, ok)
	assert.Equal(t, "15", rate)

	_, ok = cfg.Assessment.Rate("Dog Tax")
	assert.False(t, ok)

	bd := cfg.Remittance.BankDetails()
	require.NotNil(t, bd)
	assert.Equal(t, "BOSSSSJU", bd.SwiftCode)
}

func TestRemittanceBankDetails_Empty(t *testing.T) {
	assert.Nil(t, RemittanceConfig{}.BankDetails())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("billing: [not, a, map"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: South Sudan Revenue Authority")
	assert.Contains(t, contents, "currency: SSP")
	assert.Contains(t, contents, "due_days: 30")
	assert.Contains(t, contents, "prn_sequence: counter")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SSRA_PRN_SEQUENCE", "random")
	t.Setenv("SSRA_DUE_DAYS", "14")
	t.Setenv("SSRA_LOG_LEVEL", "debug")
	t.Setenv("SSRA_LOG_FORMAT", "json")
	t.Setenv("SSRA_CURRENCY", "USD")

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg))

	assert.Equal(t, "random", cfg.Billing.PRNSequence)
	assert.Equal(t, 14, cfg.Billing.DueDays)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "USD", cfg.Currency)
}

func TestApplyEnv_BadDueDays(t *testing.T) {
	t.Setenv("SSRA_DUE_DAYS", "a month")
	err := ApplyEnv(Default())
	assert.ErrorContains(t, err, "SSRA_DUE_DAYS")
}
