package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ssra-dev/revenue/internal/model"
	"github.com/ssra-dev/revenue/internal/payref"
)

// ValidationError describes one rule a bill breaks.
type ValidationError struct {
	BillID model.BillID
	Err    error
	Detail string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("bill %d: %s: %v", e.BillID, e.Detail, e.Err)
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

var minorUnits = decimal.NewFromInt(100)

// ValidateBill checks the rules a single bill must satisfy on its own.
func ValidateBill(b model.Bill) []ValidationError {
	var errs []ValidationError

	if b.Amount.IsNegative() {
		errs = append(errs, ValidationError{b.ID, ErrInvalidAmount, fmt.Sprintf("amount %s is negative", b.Amount)})
	}
	if scaled := b.Amount.Mul(minorUnits); !scaled.Equal(scaled.Floor()) {
		errs = append(errs, ValidationError{b.ID, ErrInvalidAmount, fmt.Sprintf("amount %s has more than 2 decimal places", b.Amount)})
	}
	if !b.Status.Valid() {
		errs = append(errs, ValidationError{b.ID, ErrInvalidStatus, fmt.Sprintf("status %q", b.Status)})
	}
	if b.PRN != "" && !payref.Valid(b.PRN) {
		errs = append(errs, ValidationError{b.ID, ErrInvalidPRN, fmt.Sprintf("PRN %q", b.PRN)})
	}

	return errs
}

// ValidateBills checks every bill plus the ledger-wide uniqueness rules.
func ValidateBills(bills []model.Bill) []ValidationError {
	var errs []ValidationError
	ids := make(map[model.BillID]bool, len(bills))
	prns := make(map[string]bool, len(bills))

	for _, b := range bills {
		errs = append(errs, ValidateBill(b)...)

		if b.ID <= 0 {
			errs = append(errs, ValidationError{b.ID, ErrInvalidID, "ID must be positive"})
		} else if ids[b.ID] {
			errs = append(errs, ValidationError{b.ID, ErrDuplicateID, "ID appears more than once"})
		}
		ids[b.ID] = true

		if b.PRN != "" {
			if prns[b.PRN] {
				errs = append(errs, ValidationError{b.ID, ErrDuplicatePRN, fmt.Sprintf("PRN %s appears more than once", b.PRN)})
			}
			prns[b.PRN] = true
		}
	}
	return errs
}

func joinValidation(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	all := make([]error, len(errs))
	for i, e := range errs {
		all[i] = e
	}
	return fmt.Errorf("validation failed: %w", errors.Join(all...))
}
