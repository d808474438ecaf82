package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const prnLong = `Preview the payment reference number the next assessment on --date would get.

The number is not recorded: bills.csv is unchanged, so running prn again
prints the same reference until a bill is issued. Use assess to issue a bill
with its PRN.`

func newPRNCommand(dir *string) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "prn",
		Short: "Preview the next payment reference number",
		Long:  prnLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(*dir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			when := time.Now()
			if date != "" {
				when, err = time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("parsing --date %q: %w", date, err)
				}
			}

			p, err := ws.svc.GeneratePRN(when)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "issue date (YYYY-MM-DD, default today)")
	return cmd
}
