package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Remittance is one incoming bank transfer parsed from a statement.
type Remittance struct {
	Date      time.Time
	Reference string // the PRN quoted by the payer
	Amount    decimal.Decimal
	Payer     string
}
