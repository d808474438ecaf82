package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ssra-dev/revenue/internal/config"
	"github.com/ssra-dev/revenue/internal/ledger"
	"github.com/ssra-dev/revenue/internal/remittance"
	"github.com/ssra-dev/revenue/internal/seed"
)

func newInitCommand() *cobra.Command {
	var empty bool
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a billing workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cmd.Flags().GetString("dir")
			if err != nil {
				return err
			}
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, empty, force)
		},
	}

	cmd.Flags().BoolVar(&empty, "empty", false, "start without the demo bills")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing workspace")

	return cmd
}

func runInit(out io.Writer, dir string, empty, force bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return errors.New("workspace already initialized (use --force to overwrite)")
	}

	// Create directory structure.
	dirs := []string{
		"logs",
		remittance.InboxPath(""),
		filepath.Join(remittance.InboxPath(""), "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write ssra.yaml.
	if err := config.Save(cfgPath, config.Default()); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write bills.csv.
	bills := seed.DefaultBills()
	if empty {
		bills = nil
	}
	l, err := ledger.New(bills)
	if err != nil {
		return fmt.Errorf("seeding bills: %w", err)
	}
	if err := writeLedger(dir, l); err != nil {
		return err
	}

	fmt.Fprintf(out, "Initialized SSRA billing workspace at %s (%d bills)\n", dir, l.Len())
	return nil
}
