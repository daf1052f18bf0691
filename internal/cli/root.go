// Package cli wires the statement parser into the cardstmt command line.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/card-statement-parser/internal/config"
	"github.com/insightdelivered/card-statement-parser/internal/logging"
)

const version = "1.0.0"

type app struct {
	configFile string
	logLevel   string

	cfg *config.Config
	log *logrus.Logger
}

// NewRootCmd builds the cardstmt command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "cardstmt",
		Short: "Extract summary fields from credit card statement PDFs",
		Long: `cardstmt reads the first pages of a credit card statement PDF, detects the
issuing bank and extracts the bank name, card variant, last 4 digits, billing
cycle, payment due date, total balance and a transaction summary.

Supported issuers: HDFC, Chase, SBI, Amex, Citi.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default $HOME/.cardstmt/config.yaml or ./config.yaml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(newParseCmd(a), newServeCmd(a))
	return cmd
}

// Main runs the root command and returns the process exit status.
func Main() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func (a *app) init() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	a.cfg = cfg
	a.log = logging.New(cfg.Log.Level, cfg.Log.Format)
	return nil
}
