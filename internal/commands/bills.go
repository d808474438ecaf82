package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ssra-dev/revenue/internal/model"
	"github.com/ssra-dev/revenue/internal/money"
)

func newBillsCommand(dir *string) *cobra.Command {
	var statuses []string
	var search string

	cmd := &cobra.Command{
		Use:   "bills",
		Short: "List bills with outstanding and paid totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(*dir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			l := ws.svc.Ledger()

			bills := l.All()
			if len(statuses) > 0 {
				want := make([]model.BillStatus, 0, len(statuses))
				for _, s := range statuses {
					st := model.BillStatus(s)
					if !st.Valid() {
						return fmt.Errorf("unknown status %q (want pending, paid or overdue)", s)
					}
					want = append(want, st)
				}
				bills = l.ByStatus(want...)
			}
			if search != "" {
				bills = intersect(bills, l.Search(search))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Outstanding: %s\n", money.Format(ws.cfg.Currency, l.Outstanding()))
			fmt.Fprintf(out, "Paid:        %s\n\n", money.Format(ws.cfg.Currency, l.Paid()))
			return printBills(out, ws.cfg.Currency, bills)
		},
	}

	cmd.Flags().StringSliceVar(&statuses, "status", nil, "only show bills with these statuses")
	cmd.Flags().StringVar(&search, "search", "", "filter by type, description or PRN")

	return cmd
}

// intersect keeps the bills of a that also appear in b, in a's order.
func intersect(a, b []model.Bill) []model.Bill {
	in := make(map[model.BillID]bool, len(b))
	for _, bill := range b {
		in[bill.ID] = true
	}
	var out []model.Bill
	for _, bill := range a {
		if in[bill.ID] {
			out = append(out, bill)
		}
	}
	return out
}

func printBills(out io.Writer, currency string, bills []model.Bill) error {
	if len(bills) == 0 {
		_, err := fmt.Fprintln(out, "No bills.")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tAMOUNT\tDUE\tSTATUS\tPRN\tDESCRIPTION")
	for _, b := range bills {
		due := ""
		if !b.DueDate.IsZero() {
			due = b.DueDate.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.Type, money.Format(currency, b.Amount), due, b.Status, b.PRN, b.Description)
	}
	return tw.Flush()
}
