// Package billing issues assessment bills and drives their status changes.
package billing

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ssra-dev/revenue/internal/activity"
	"github.com/ssra-dev/revenue/internal/assessment"
	"github.com/ssra-dev/revenue/internal/ledger"
	"github.com/ssra-dev/revenue/internal/model"
	"github.com/ssra-dev/revenue/internal/payref"
)

// DefaultDueDays is how long a new assessment bill stays payable.
const DefaultDueDays = 30

// ErrMissingTaxType is returned when an assessment names no tax type.
var ErrMissingTaxType = errors.New("tax type is required")

// Options configures a Service. Zero values select defaults.
type Options struct {
	DueDays     int
	Policy      payref.Policy
	MaxAttempts int
	Bank        *model.BankDetails // attached to new bills when set
	Now         func() time.Time
	Rand        *rand.Rand // random PRN policies only
	Logger      *zerolog.Logger
}

// Service owns a ledger and issues bills into it.
type Service struct {
	ledger   *ledger.Ledger
	prns     *payref.Generator
	now      func() time.Time
	dueDays  int
	bank     *model.BankDetails
	log      zerolog.Logger
	activity []activity.Entry
}

// NewService creates a Service over an existing ledger.
func NewService(l *ledger.Ledger, opts Options) *Service {
	s := &Service{
		ledger:  l,
		now:     opts.Now,
		dueDays: opts.DueDays,
		log:     zerolog.Nop(),
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.dueDays <= 0 {
		s.dueDays = DefaultDueDays
	}
	if opts.Bank != nil {
		bd := *opts.Bank
		s.bank = &bd
	}
	if opts.Logger != nil {
		s.log = opts.Logger.With().Str("component", "billing").Logger()
	}

	var taken func(string) bool
	if opts.Policy != payref.PolicyRandom {
		taken = l.HasPRN
	}
	s.prns = payref.NewGenerator(opts.Policy, taken, opts.Rand)
	s.prns.MaxAttempts = opts.MaxAttempts
	for _, b := range l.All() {
		if b.PRN != "" {
			s.prns.Observe(b.PRN)
		}
	}
	return s
}

// Ledger returns the ledger the service owns.
func (s *Service) Ledger() *ledger.Ledger {
	return s.ledger
}

// Activity returns the entries recorded since the service was created.
func (s *Service) Activity() []activity.Entry {
	return append([]activity.Entry(nil), s.activity...)
}

// Estimate returns the liability for an assessment without issuing a bill.
func (s *Service) Estimate(in assessment.Input) decimal.Decimal {
	return in.Liability()
}

// GeneratePRN mints a PRN for date without attaching it to a bill.
func (s *Service) GeneratePRN(date time.Time) (string, error) {
	return s.prns.Generate(date)
}

// Assess computes the liability for in and adds a pending bill for it at the
// head of the ledger.
func (s *Service) Assess(in assessment.Input) (model.Bill, error) {
	if in.TaxType == "" {
		return model.Bill{}, ErrMissingTaxType
	}

	now := s.now()
	ref, err := s.prns.Generate(now)
	if err != nil {
		return model.Bill{}, fmt.Errorf("generating PRN: %w", err)
	}

	bill := model.Bill{
		Type:        in.TaxType,
		Amount:      in.Liability(),
		DueDate:     time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, s.dueDays),
		Status:      model.StatusPending,
		Description: in.TaxType + " Assessment",
		PRN:         ref,
		BankDetails: s.bank,
	}

	id, err := s.ledger.Add(bill)
	if err != nil {
		return model.Bill{}, fmt.Errorf("adding bill: %w", err)
	}
	created, err := s.ledger.Get(id)
	if err != nil {
		return model.Bill{}, err
	}

	s.log.Info().
		Int("bill_id", int(created.ID)).
		Str("prn", created.PRN).
		Str("amount", created.Amount.StringFixed(2)).
		Msg("assessment bill created")
	s.record(activity.ActionBillCreated, created.ID, created.PRN,
		fmt.Sprintf("%s: taxable %s at %s%% = %s", in.TaxType, in.Taxable().StringFixed(2), in.Rate.String(), created.Amount.StringFixed(2)))

	return created, nil
}

// Pay settles a pending bill.
func (s *Service) Pay(id model.BillID) (model.Bill, error) {
	return s.transition(id, model.StatusPaid, "payment received")
}

// MarkOverdue flags a pending bill as overdue.
func (s *Service) MarkOverdue(id model.BillID) (model.Bill, error) {
	return s.transition(id, model.StatusOverdue, "marked overdue")
}

// MarkPastDue flags every pending bill due before asOf as overdue and
// returns the bills it changed.
func (s *Service) MarkPastDue(asOf time.Time) ([]model.Bill, error) {
	var changed []model.Bill
	for _, b := range s.ledger.PastDue(asOf) {
		updated, err := s.transition(b.ID, model.StatusOverdue,
			fmt.Sprintf("due %s, checked %s", b.DueDate.Format("2006-01-02"), asOf.Format("2006-01-02")))
		if err != nil {
			return changed, err
		}
		changed = append(changed, updated)
	}
	return changed, nil
}

func (s *Service) transition(id model.BillID, to model.BillStatus, why string) (model.Bill, error) {
	before, err := s.ledger.Get(id)
	if err != nil {
		return model.Bill{}, err
	}
	updated, err := s.ledger.SetStatus(id, to)
	if err != nil {
		s.log.Debug().Err(err).Int("bill_id", int(id)).Msg("status change rejected")
		return model.Bill{}, err
	}

	s.log.Info().
		Int("bill_id", int(id)).
		Str("from", string(before.Status)).
		Str("to", string(to)).
		Msg("bill status changed")
	s.record(activity.ActionStatusChanged, id, updated.PRN, fmt.Sprintf("%s -> %s: %s", before.Status, to, why))
	return updated, nil
}

func (s *Service) record(action activity.Action, id model.BillID, ref, details string) {
	s.activity = append(s.activity, activity.NewEntry(s.now(), action, id, ref, details))
}
