// Package ledger owns the ordered collection of bills and enforces their
// status lifecycle.
//
// Bills are kept most-recent-first. A Ledger is not safe for concurrent use;
// it belongs to a single controller (see package billing).
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ssra-dev/revenue/internal/model"
)

// Ledger holds bills in display order.
type Ledger struct {
	bills []model.Bill
	ids   map[model.BillID]bool
	prns  map[string]model.BillID
	maxID model.BillID
}

// New creates a Ledger holding bills in the given order.
func New(bills []model.Bill) (*Ledger, error) {
	if err := joinValidation(ValidateBills(bills)); err != nil {
		return nil, err
	}

	l := &Ledger{
		bills: make([]model.Bill, 0, len(bills)),
		ids:   make(map[model.BillID]bool, len(bills)),
		prns:  make(map[string]model.BillID, len(bills)),
	}
	for _, b := range bills {
		l.index(b)
		l.bills = append(l.bills, b.Clone())
	}
	return l, nil
}

// Add inserts a bill at the head of the ledger and returns its ID.
// A zero ID is replaced by the next free one.
func (l *Ledger) Add(b model.Bill) (model.BillID, error) {
	switch {
	case b.ID == 0:
		b.ID = l.maxID + 1
	case b.ID < 0:
		return 0, fmt.Errorf("bill %d: %w", b.ID, ErrInvalidID)
	case l.ids[b.ID]:
		return 0, fmt.Errorf("bill %d: %w", b.ID, ErrDuplicateID)
	}

	if err := joinValidation(ValidateBill(b)); err != nil {
		return 0, err
	}
	if b.PRN != "" {
		if owner, ok := l.prns[b.PRN]; ok {
			return 0, fmt.Errorf("PRN %s already issued to bill %d: %w", b.PRN, owner, ErrDuplicatePRN)
		}
	}

	l.index(b)
	l.bills = append([]model.Bill{b.Clone()}, l.bills...)
	return b.ID, nil
}

// Get returns the bill with the given ID.
func (l *Ledger) Get(id model.BillID) (model.Bill, error) {
	i := l.indexOf(id)
	if i < 0 {
		return model.Bill{}, fmt.Errorf("bill %d: %w", id, ErrNotFound)
	}
	return l.bills[i].Clone(), nil
}

// FindByPRN returns the bill a PRN was issued to.
func (l *Ledger) FindByPRN(p string) (model.Bill, error) {
	id, ok := l.prns[p]
	if !ok {
		return model.Bill{}, fmt.Errorf("PRN %s: %w", p, ErrNotFound)
	}
	return l.Get(id)
}

// HasPRN reports whether a PRN has been issued in this ledger.
func (l *Ledger) HasPRN(p string) bool {
	_, ok := l.prns[p]
	return ok
}

// Len returns the number of bills.
func (l *Ledger) Len() int {
	return len(l.bills)
}

// All returns every bill, most recent first.
func (l *Ledger) All() []model.Bill {
	return l.filter(func(model.Bill) bool { return true })
}

// ByStatus returns the bills whose status is in statuses, in ledger order.
func (l *Ledger) ByStatus(statuses ...model.BillStatus) []model.Bill {
	want := make(map[model.BillStatus]bool, len(statuses))
	for _, s := range statuses {
		want[s] = true
	}
	return l.filter(func(b model.Bill) bool { return want[b.Status] })
}

// Search returns bills whose type, description or PRN contains query,
// ignoring case. An empty query matches everything.
func (l *Ledger) Search(query string) []model.Bill {
	q := strings.ToLower(strings.TrimSpace(query))
	return l.filter(func(b model.Bill) bool {
		return strings.Contains(strings.ToLower(b.Type), q) ||
			strings.Contains(strings.ToLower(b.Description), q) ||
			strings.Contains(strings.ToLower(b.PRN), q)
	})
}

// PastDue returns pending bills due on a day before asOf. Bills without a
// due date are never past due.
func (l *Ledger) PastDue(asOf time.Time) []model.Bill {
	today := calendarDay(asOf)
	return l.filter(func(b model.Bill) bool {
		return b.Status == model.StatusPending && !b.DueDate.IsZero() && calendarDay(b.DueDate).Before(today)
	})
}

// SetStatus moves a bill to a new status and returns the updated bill.
// The ledger is unchanged when an error is returned.
func (l *Ledger) SetStatus(id model.BillID, status model.BillStatus) (model.Bill, error) {
	i := l.indexOf(id)
	if i < 0 {
		return model.Bill{}, fmt.Errorf("bill %d: %w", id, ErrNotFound)
	}
	if !status.Valid() {
		return model.Bill{}, fmt.Errorf("bill %d: status %q: %w", id, status, ErrInvalidStatus)
	}

	from := l.bills[i].Status
	if !model.CanTransition(from, status) {
		return model.Bill{}, fmt.Errorf("bill %d: %s -> %s: %w", id, from, status, ErrInvalidTransition)
	}

	l.bills[i].Status = status
	return l.bills[i].Clone(), nil
}

// Outstanding returns the total of pending and overdue bills.
func (l *Ledger) Outstanding() decimal.Decimal {
	return SumAmounts(l.ByStatus(model.StatusPending, model.StatusOverdue))
}

// Paid returns the total of paid bills.
func (l *Ledger) Paid() decimal.Decimal {
	return SumAmounts(l.ByStatus(model.StatusPaid))
}

// SumAmounts totals the amounts of bills. An empty slice sums to zero.
func SumAmounts(bills []model.Bill) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bills {
		total = total.Add(b.Amount)
	}
	return total
}

func (l *Ledger) index(b model.Bill) {
	l.ids[b.ID] = true
	if b.PRN != "" {
		l.prns[b.PRN] = b.ID
	}
	if b.ID > l.maxID {
		l.maxID = b.ID
	}
}

func (l *Ledger) indexOf(id model.BillID) int {
	if !l.ids[id] {
		return -1
	}
	for i := range l.bills {
		if l.bills[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) filter(keep func(model.Bill) bool) []model.Bill {
	var out []model.Bill
	for _, b := range l.bills {
		if keep(b) {
			out = append(out, b.Clone())
		}
	}
	return out
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
