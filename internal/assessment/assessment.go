// Package assessment turns declared income, deductions and a tax rate into a
// tax liability.
package assessment

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Input is one assessment as entered on the calculator form.
type Input struct {
	TaxType    string
	Income     decimal.Decimal
	Deductions decimal.Decimal
	Rate       decimal.Decimal // percent
}

// ParseInput builds an Input from raw form values. Malformed numbers become zero.
func ParseInput(taxType, income, deductions, rate string) Input {
	return Input{
		TaxType:    strings.TrimSpace(taxType),
		Income:     Normalize(income),
		Deductions: Normalize(deductions),
		Rate:       Normalize(rate),
	}
}

// Taxable returns the taxable income of the input.
func (in Input) Taxable() decimal.Decimal {
	return TaxableIncome(in.Income, in.Deductions)
}

// Liability returns the tax owed for the input.
func (in Input) Liability() decimal.Decimal {
	return ComputeLiability(in.Income, in.Deductions, in.Rate)
}

// TaxableIncome returns income minus deductions, never below zero.
func TaxableIncome(income, deductions decimal.Decimal) decimal.Decimal {
	taxable := nonNegative(income).Sub(nonNegative(deductions))
	if taxable.IsNegative() {
		return decimal.Zero
	}
	return taxable
}

// ComputeLiability returns (income - deductions) * rate / 100, rounded to
// minor units. Negative inputs count as zero and the result is never negative.
func ComputeLiability(income, deductions, rate decimal.Decimal) decimal.Decimal {
	taxable := TaxableIncome(income, deductions)
	r := nonNegative(rate)
	if taxable.IsZero() || r.IsZero() {
		return decimal.Zero
	}
	return taxable.Mul(r).Div(hundred).Round(2)
}

// maxIntegerDigits bounds accepted amounts below 10^15.
const maxIntegerDigits = 15

// plainNumber is an unsigned decimal without exponent notation.
var plainNumber = regexp.MustCompile(`^(\d*)(\.\d+)?$`)

// Normalize parses a form value leniently. Empty, non-numeric, negative and
// oversized values yield zero, as does exponent notation. Thousands
// separators, an "SSP" prefix and a trailing "%" are accepted.
func Normalize(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if len(s) >= 3 && strings.EqualFold(s[:3], "SSP") {
		s = s[3:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	m := plainNumber.FindStringSubmatch(s)
	if m == nil || len(strings.TrimLeft(m[1], "0")) > maxIntegerDigits {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return nonNegative(d)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
