package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillID identifies a bill within a ledger.
type BillID int

// BillStatus represents the settlement state of a bill.
type BillStatus string

const (
	StatusPending BillStatus = "pending"
	StatusPaid    BillStatus = "paid"
	StatusOverdue BillStatus = "overdue"
)

// Valid reports whether s is a known status.
func (s BillStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// CanTransition reports whether a bill may move from one status to another.
// Only pending bills move; paid and overdue are terminal.
func CanTransition(from, to BillStatus) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusPaid || to == StatusOverdue
}

// BankDetails holds the account a bill is remitted to by bank transfer.
type BankDetails struct {
	BankName      string
	AccountNumber string
	AccountName   string
	SwiftCode     string
}

// IsZero reports whether no field is set.
func (b BankDetails) IsZero() bool {
	return b == BankDetails{}
}

// Bill is a record of an amount owed to the revenue authority.
type Bill struct {
	ID          BillID
	Type        string          // "Income Tax", "Business Tax", ...
	Amount      decimal.Decimal // never negative
	DueDate     time.Time
	Status      BillStatus
	Description string
	PRN         string       // empty until assigned, immutable after
	BankDetails *BankDetails // nil when no transfer account is attached
}

// Clone returns a copy of b that shares no pointers with it.
func (b Bill) Clone() Bill {
	if b.BankDetails != nil {
		bd := *b.BankDetails
		b.BankDetails = &bd
	}
	return b
}

// Outstanding reports whether the bill still needs to be settled.
func (b Bill) Outstanding() bool {
	return b.Status == StatusPending || b.Status == StatusOverdue
}
