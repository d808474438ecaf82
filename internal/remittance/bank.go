package remittance

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ssra-dev/revenue/internal/model"
)

// BankParser parses the collection bank's statement export:
// date,reference,amount,payer with a header row.
type BankParser struct{}

const (
	bankDateFormat = "2006-01-02"
	bankNumFields  = 4
	bankColDate    = 0
	bankColRef     = 1
	bankColAmount  = 2
	bankColPayer   = 3
)

// Format returns the parser name.
func (p *BankParser) Format() string { return "bank" }

// Parse reads a statement and returns its credits.
func (p *BankParser) Parse(r io.Reader) ([]model.Remittance, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = bankNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading bank statement CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var out []model.Remittance
	for i, rec := range records[1:] {
		rm, err := parseBankRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, rm)
	}
	return out, nil
}

func parseBankRow(rec []string) (model.Remittance, error) {
	date, err := time.Parse(bankDateFormat, strings.TrimSpace(rec[bankColDate]))
	if err != nil {
		return model.Remittance{}, fmt.Errorf("parsing date %q: %w", rec[bankColDate], err)
	}

	raw := strings.ReplaceAll(strings.TrimSpace(rec[bankColAmount]), ",", "")
	if strings.ContainsAny(raw, "eE") {
		return model.Remittance{}, fmt.Errorf("parsing amount %q: exponent notation not allowed", rec[bankColAmount])
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return model.Remittance{}, fmt.Errorf("parsing amount %q: %w", rec[bankColAmount], err)
	}

	return model.Remittance{
		Date:      date,
		Reference: strings.ToUpper(strings.TrimSpace(rec[bankColRef])),
		Amount:    amount,
		Payer:     strings.TrimSpace(rec[bankColPayer]),
	}, nil
}
