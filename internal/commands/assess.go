package commands

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ssra-dev/revenue/internal/assessment"
	"github.com/ssra-dev/revenue/internal/config"
	"github.com/ssra-dev/revenue/internal/money"
)

type assessFlags struct {
	taxType    string
	income     string
	deductions string
	rate       string
}

func (f *assessFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.taxType, "type", "", "tax type (defaults to the configured default)")
	cmd.Flags().StringVar(&f.income, "income", "", "declared income")
	cmd.Flags().StringVar(&f.deductions, "deductions", "", "allowable deductions")
	cmd.Flags().StringVar(&f.rate, "rate", "", "tax rate in percent (defaults to the tax type's rate)")
}

// input resolves defaults from cfg. Numbers are parsed leniently.
func (f *assessFlags) input(cfg *config.Config) assessment.Input {
	taxType := f.taxType
	if taxType == "" {
		taxType = cfg.Assessment.DefaultTaxType
	}
	rate := f.rate
	if rate == "" {
		rate, _ = cfg.Assessment.Rate(taxType)
	}
	return assessment.ParseInput(taxType, f.income, f.deductions, rate)
}

func newEstimateCommand(dir *string) *cobra.Command {
	var flags assessFlags

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Show the estimated tax for an assessment without issuing a bill",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(*dir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			in := flags.input(ws.cfg)
			printAssessment(cmd.OutOrStdout(), ws.cfg.Currency, in, ws.svc.Estimate(in))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newAssessCommand(dir *string) *cobra.Command {
	var flags assessFlags

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Create a tax assessment and issue a pending bill for it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(*dir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			in := flags.input(ws.cfg)
			bill, err := ws.svc.Assess(in)
			if err != nil {
				return err
			}
			if err := ws.save(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printAssessment(out, ws.cfg.Currency, in, bill.Amount)
			fmt.Fprintf(out, "\nBill %d issued, due %s\n", bill.ID, bill.DueDate.Format("2006-01-02"))
			fmt.Fprintf(out, "PRN: %s\n", bill.PRN)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func printAssessment(out io.Writer, currency string, in assessment.Input, tax decimal.Decimal) {
	fmt.Fprintf(out, "Tax type:       %s\n", in.TaxType)
	fmt.Fprintf(out, "Income:         %s\n", money.FormatExact(currency, in.Income))
	fmt.Fprintf(out, "Deductions:     %s\n", money.FormatExact(currency, in.Deductions))
	fmt.Fprintf(out, "Taxable income: %s\n", money.FormatExact(currency, in.Taxable()))
	fmt.Fprintf(out, "Rate:           %s%%\n", in.Rate.String())
	fmt.Fprintf(out, "Estimated tax:  %s\n", money.Format(currency, tax))
}
