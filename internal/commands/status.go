package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssra-dev/revenue/internal/model"
	"github.com/ssra-dev/revenue/internal/money"
)

func parseBillID(s string) (model.BillID, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid bill ID %q", s)
	}
	return model.BillID(n), nil
}

func newPayCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "pay <id>",
		Short: "Record payment of a pending bill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBillID(args[0])
			if err != nil {
				return err
			}
			ws, err := openWorkspace(*dir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			bill, err := ws.svc.Pay(id)
			if err != nil {
				return err
			}
			if err := ws.save(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Bill %d paid (%s, PRN %s)\n", bill.ID, money.Format(ws.cfg.Currency, bill.Amount), bill.PRN)
			return nil
		},
	}
}

func newOverdueCommand(dir *string) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "overdue [id]",
		Short: "Mark a bill, or every pending bill past its due date, as overdue",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(*dir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			var changed []model.Bill
			if len(args) == 1 {
				id, err := parseBillID(args[0])
				if err != nil {
					return err
				}
				bill, err := ws.svc.MarkOverdue(id)
				if err != nil {
					return err
				}
				changed = append(changed, bill)
			} else {
				when := time.Now()
				if asOf != "" {
					when, err = time.Parse("2006-01-02", asOf)
					if err != nil {
						return fmt.Errorf("parsing --as-of %q: %w", asOf, err)
					}
				}
				changed, err = ws.svc.MarkPastDue(when)
				if err != nil {
					return err
				}
			}

			if len(changed) == 0 {
				fmt.Fprintln(out, "No bills changed.")
				return nil
			}
			if err := ws.save(); err != nil {
				return err
			}
			for _, b := range changed {
				fmt.Fprintf(out, "Bill %d overdue (due %s)\n", b.ID, b.DueDate.Format("2006-01-02"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "date to check due dates against (YYYY-MM-DD, default today)")
	return cmd
}
