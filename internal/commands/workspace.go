package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/ssra-dev/revenue/internal/activity"
	"github.com/ssra-dev/revenue/internal/billing"
	"github.com/ssra-dev/revenue/internal/config"
	"github.com/ssra-dev/revenue/internal/ledger"
	"github.com/ssra-dev/revenue/internal/logger"
	"github.com/ssra-dev/revenue/internal/payref"
)

// BillsFile is the workspace's bill export.
const BillsFile = "bills.csv"

// workspace is one loaded directory: config, ledger and the service over it.
type workspace struct {
	root string
	cfg  *config.Config
	svc  *billing.Service
	log  zerolog.Logger

	flushed int // activity entries already appended to the log
}

func openWorkspace(dir string, stderr io.Writer) (*workspace, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("loading workspace (run 'ssra init' first?): %w", err)
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	logCfg := logger.DefaultConfig()
	logCfg.Output = stderr
	if cfg.Logging.Level != "" {
		logCfg.Level = cfg.Logging.Level
	}
	if cfg.Logging.Format != "" {
		logCfg.Format = cfg.Logging.Format
	}
	base, err := logger.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}
	log := logger.WithComponent("workspace")

	policy, err := payref.ParsePolicy(cfg.Billing.PRNSequence)
	if err != nil {
		return nil, err
	}

	l, err := loadLedger(filepath.Join(root, BillsFile))
	if err != nil {
		return nil, err
	}

	svc := billing.NewService(l, billing.Options{
		DueDays:     cfg.Billing.DueDays,
		Policy:      policy,
		MaxAttempts: cfg.Billing.PRNMaxAttempts,
		Bank:        cfg.Remittance.BankDetails(),
		Logger:      &base,
	})

	log.Debug().Str("root", root).Int("bills", l.Len()).Msg("workspace loaded")
	return &workspace{root: root, cfg: cfg, svc: svc, log: log}, nil
}

func loadLedger(path string) (*ledger.Ledger, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ledger.New(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("opening bills: %w", err)
	}
	defer f.Close()

	l, err := ledger.Import(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return l, nil
}

// save writes bills.csv and appends activity recorded since the last save.
func (w *workspace) save() error {
	if err := writeLedger(w.root, w.svc.Ledger()); err != nil {
		return err
	}
	entries := w.svc.Activity()[w.flushed:]
	if err := activity.Append(w.root, entries); err != nil {
		return fmt.Errorf("writing activity log: %w", err)
	}
	w.flushed += len(entries)
	w.log.Debug().Int("bills", w.svc.Ledger().Len()).Int("activity", len(entries)).Msg("workspace saved")
	return nil
}

func writeLedger(root string, l *ledger.Ledger) error {
	tmp, err := os.CreateTemp(root, ".bills-*.csv")
	if err != nil {
		return fmt.Errorf("creating bills file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := l.Export(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("writing bills: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing bills file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(root, BillsFile)); err != nil {
		return fmt.Errorf("replacing bills file: %w", err)
	}
	return nil
}
