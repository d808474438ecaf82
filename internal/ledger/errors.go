package ledger

import "errors"

var (
	ErrNotFound          = errors.New("bill not found")
	ErrDuplicateID       = errors.New("duplicate bill ID")
	ErrDuplicatePRN      = errors.New("duplicate PRN")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidPRN        = errors.New("invalid PRN")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidID         = errors.New("invalid bill ID")
)
