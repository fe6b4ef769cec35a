// Command careplan is the CLI entry point for the daily home-care
// routing/scheduling core. It wires the Travel Oracle, Instance Builder,
// Model Assembler and Solver Driver together for a single day (`solve`) or
// a whole batch of days (`batch`).
//
// File layout, grounded on
// theRebelliousNerd-codenerd/cmd/nerd/main.go's split-by-command-file
// convention:
//   - main.go       - entry point, rootCmd, global flags, logger bootstrap
//   - solve_cmd.go  - `solve` subcommand
//   - batch_cmd.go  - `batch` subcommand
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stlbnmaria/careplan/internal/logging"
)

var (
	verbose    bool
	bundlePath string
	configPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "careplan",
	Short: "Daily home-care routing/scheduling optimizer",
	Long: `careplan assigns each day's care sessions to caregivers and decides
the inter-session order per caregiver, minimizing commute time and short
idle gaps under competence, availability and transport-mode constraints.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&bundlePath, "bundle", "", "path to a JSON input bundle (roster, travel, sessions)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (defaults applied when omitted)")
	_ = rootCmd.MarkPersistentFlagRequired("bundle")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
