package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssra-dev/revenue/internal/money"
)

func newShowCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a bill with its PRN and bank transfer details",
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
			b, err := ws.svc.Ledger().Get(id)
			if err != nil {
				return err
			}

			amount := money.Format(ws.cfg.Currency, b.Amount)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Bill %d: %s\n", b.ID, b.Description)
			fmt.Fprintf(out, "Type:   %s\n", b.Type)
			fmt.Fprintf(out, "Amount: %s\n", amount)
			if !b.DueDate.IsZero() {
				fmt.Fprintf(out, "Due:    %s\n", b.DueDate.Format("2006-01-02"))
			}
			fmt.Fprintf(out, "Status: %s\n", b.Status)

			if b.PRN == "" {
				return nil
			}
			fmt.Fprintf(out, "\nPayment Reference Number: %s\n", b.PRN)

			if bd := b.BankDetails; bd != nil {
				fmt.Fprintln(out, "\nBank Details")
				fmt.Fprintf(out, "  Bank Name:      %s\n", bd.BankName)
				fmt.Fprintf(out, "  Account Number: %s\n", bd.AccountNumber)
				fmt.Fprintf(out, "  Account Name:   %s\n", bd.AccountName)
				fmt.Fprintf(out, "  SWIFT Code:     %s\n", bd.SwiftCode)
			}

			if b.Outstanding() {
				fmt.Fprintln(out, "\nPayment Instructions")
				fmt.Fprintln(out, "  1. Use the PRN as your payment reference")
				fmt.Fprintf(out, "  2. Transfer the exact amount: %s\n", amount)
				fmt.Fprintln(out, "  3. Keep your bank receipt for verification")
				fmt.Fprintln(out, "  4. Payment will be processed within 24 hours")
			}
			return nil
		},
	}
}
