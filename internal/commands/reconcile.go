package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssra-dev/revenue/internal/billing"
	"github.com/ssra-dev/revenue/internal/model"
	"github.com/ssra-dev/revenue/internal/money"
	"github.com/ssra-dev/revenue/internal/remittance"
)

func newReconcileCommand(dir *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "reconcile [statement.csv]",
		Short: "Settle bills from a bank statement (default: every statement in statements/)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := remittance.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown statement format %q", format)
			}
			ws, err := openWorkspace(*dir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				rms, err := parseStatement(parser, args[0])
				if err != nil {
					return err
				}
				return reconcileAndSave(out, ws, rms)
			}

			files, err := remittance.Scan(ws.root)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(out, "No statements to reconcile.")
				return nil
			}
			for _, f := range files {
				rms, err := parseStatement(parser, f.Path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s:\n", f.Name)
				if err := reconcileAndSave(out, ws, rms); err != nil {
					return err
				}
				if err := remittance.MarkProcessed(ws.root, f.Name); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "bank", "statement format")
	return cmd
}

func parseStatement(p remittance.Parser, path string) ([]model.Remittance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	rms, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rms, nil
}

func reconcileAndSave(out io.Writer, ws *workspace, rms []model.Remittance) error {
	res, err := ws.svc.Reconcile(rms)
	if err != nil {
		return err
	}
	if err := ws.save(); err != nil {
		return err
	}
	printReconcile(out, ws.cfg.Currency, res)
	return nil
}

func printReconcile(out io.Writer, currency string, res billing.ReconcileResult) {
	for _, b := range res.Settled {
		fmt.Fprintf(out, "  paid       bill %d  %s  %s\n", b.ID, b.PRN, money.Format(currency, b.Amount))
	}
	for _, u := range res.Unmatched {
		fmt.Fprintf(out, "  unmatched  %s  %s  %s\n", u.Remittance.Reference, money.Format(currency, u.Remittance.Amount), u.Reason)
	}
	fmt.Fprintf(out, "%d settled, %d unmatched\n", len(res.Settled), len(res.Unmatched))
}
