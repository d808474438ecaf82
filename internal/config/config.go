package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ssra-dev/revenue/internal/model"
	"github.com/ssra-dev/revenue/internal/seed"
)

// FileName is the workspace configuration file.
const FileName = "ssra.yaml"

// Config represents the top-level ssra.yaml configuration.
type Config struct {
	Authority  AuthorityConfig  `yaml:"authority"`
	Currency   string           `yaml:"currency"`
	Billing    BillingConfig    `yaml:"billing"`
	Assessment AssessmentConfig `yaml:"assessment"`
	Remittance RemittanceConfig `yaml:"remittance"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// AuthorityConfig identifies the revenue authority.
type AuthorityConfig struct {
	Name string `yaml:"name"`
}

// BillingConfig controls how assessment bills are issued.
type BillingConfig struct {
	DueDays        int    `yaml:"due_days"`
	PRNSequence    string `yaml:"prn_sequence"` // random, counter or checked
	PRNMaxAttempts int    `yaml:"prn_max_attempts"`
}

// AssessmentConfig lists the calculator's tax types.
type AssessmentConfig struct {
	DefaultTaxType string          `yaml:"default_tax_type"`
	TaxTypes       []TaxTypeConfig `yaml:"tax_types"`
}

// TaxTypeConfig is one selectable tax type and its default rate in percent.
type TaxTypeConfig struct {
	Name string `yaml:"name"`
	Rate string `yaml:"rate"`
}

// RemittanceConfig is the collection account attached to new bills.
type RemittanceConfig struct {
	BankName      string `yaml:"bank_name,omitempty"`
	AccountNumber string `yaml:"account_number,omitempty"`
	AccountName   string `yaml:"account_name,omitempty"`
	SwiftCode     string `yaml:"swift_code,omitempty"`
}

// LoggingConfig controls zerolog output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// BankDetails returns the configured account, or nil if none is set.
func (r RemittanceConfig) BankDetails() *model.BankDetails {
	bd := model.BankDetails{
		BankName:      r.BankName,
		AccountNumber: r.AccountNumber,
		AccountName:   r.AccountName,
		SwiftCode:     r.SwiftCode,
	}
	if bd.IsZero() {
		return nil
	}
	return &bd
}

// Rate returns the configured default rate for a tax type.
func (a AssessmentConfig) Rate(taxType string) (string, bool) {
	for _, tt := range a.TaxTypes {
		if tt.Name == taxType {
			return tt.Rate, true
		}
	}
	return "", false
}

// Load reads an ssra.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the portal's defaults.
func Default() *Config {
	bank := seed.RevenueAuthorityAccount()
	var taxTypes []TaxTypeConfig
	for _, tt := range seed.DefaultTaxTypes() {
		taxTypes = append(taxTypes, TaxTypeConfig{Name: tt.Name, Rate: tt.Rate.String()})
	}

	return &Config{
		Authority: AuthorityConfig{
			Name: "South Sudan Revenue Authority",
		},
		Currency: "SSP",
		Billing: BillingConfig{
			DueDays:        30,
			PRNSequence:    "counter",
			PRNMaxAttempts: 10,
		},
		Assessment: AssessmentConfig{
			DefaultTaxType: "Income Tax",
			TaxTypes:       taxTypes,
		},
		Remittance: RemittanceConfig{
			BankName:      bank.BankName,
			AccountNumber: bank.AccountNumber,
			AccountName:   bank.AccountName,
			SwiftCode:     bank.SwiftCode,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// ApplyEnv overrides settings from SSRA_* environment variables.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv("SSRA_CURRENCY"); v != "" {
		cfg.Currency = v
	}
	if v := os.Getenv("SSRA_PRN_SEQUENCE"); v != "" {
		cfg.Billing.PRNSequence = v
	}
	if v := os.Getenv("SSRA_DUE_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing SSRA_DUE_DAYS %q: %w", v, err)
		}
		cfg.Billing.DueDays = n
	}
	if v := os.Getenv("SSRA_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SSRA_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	return nil
}
