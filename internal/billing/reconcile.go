package billing

import (
	"errors"
	"fmt"

	"github.com/ssra-dev/revenue/internal/activity"
	"github.com/ssra-dev/revenue/internal/ledger"
	"github.com/ssra-dev/revenue/internal/model"
)

// Unmatched is a remittance that settled nothing, with the reason.
type Unmatched struct {
	Remittance model.Remittance
	Reason     string
}

// ReconcileResult reports the outcome of matching a statement.
type ReconcileResult struct {
	Settled   []model.Bill
	Unmatched []Unmatched
}

// Reconcile settles pending bills whose PRN and exact amount appear in rms.
// Anything else is reported as unmatched; only ledger failures are errors.
func (s *Service) Reconcile(rms []model.Remittance) (ReconcileResult, error) {
	var res ReconcileResult

	for _, rm := range rms {
		reason, err := s.settle(rm, &res)
		if err != nil {
			return res, err
		}
		if reason == "" {
			continue
		}

		res.Unmatched = append(res.Unmatched, Unmatched{Remittance: rm, Reason: reason})
		s.log.Warn().
			Str("reference", rm.Reference).
			Str("amount", rm.Amount.StringFixed(2)).
			Str("reason", reason).
			Msg("remittance not matched")
		s.record(activity.ActionRemittanceUnmatched, 0, rm.Reference,
			fmt.Sprintf("%s from %s: %s", rm.Amount.StringFixed(2), rm.Payer, reason))
	}
	return res, nil
}

// settle returns a non-empty reason when rm cannot settle a bill.
func (s *Service) settle(rm model.Remittance, res *ReconcileResult) (string, error) {
	bill, err := s.ledger.FindByPRN(rm.Reference)
	if errors.Is(err, ledger.ErrNotFound) {
		return "unknown PRN", nil
	}
	if err != nil {
		return "", err
	}

	if bill.Status != model.StatusPending {
		return fmt.Sprintf("bill %d is %s", bill.ID, bill.Status), nil
	}
	if !rm.Amount.Equal(bill.Amount) {
		return fmt.Sprintf("amount %s does not match bill %d amount %s",
			rm.Amount.StringFixed(2), bill.ID, bill.Amount.StringFixed(2)), nil
	}

	paid, err := s.transition(bill.ID, model.StatusPaid, fmt.Sprintf("bank transfer from %s on %s", rm.Payer, rm.Date.Format("2006-01-02")))
	if err != nil {
		return "", err
	}
	res.Settled = append(res.Settled, paid)
	return "", nil
}
