// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"

	"fjacquet/expense-ledger/internal/config"
	"fjacquet/expense-ledger/internal/container"
	"fjacquet/expense-ledger/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// ConfigFile is an explicit configuration file, overriding discovery
	ConfigFile string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "expense-ledger",
		Short: "A personal expense tracker with AI categorization and 50/30/20 budget checks.",
		Long: `expense-ledger records personal expenses in a CSV ledger.
Each description is classified into a budgeting category by a language model,
and the ledger can be summarised by category, by date and against the 50/30/20 rule.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to expense-ledger!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if envFile := config.LoadEnv(); envFile != "" {
				Log.WithField("file", envFile).Debug("Loaded environment variables")
			}
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&ConfigFile, "config", "c", "", "Configuration file (default: config.yaml in $HOME/.expense-ledger, .expense-ledger or .)")
}

// NewContainer loads configuration, reconfigures Log from it and wires the
// application dependencies for one command run.
func NewContainer(ctx context.Context, opts ...container.Option) (*container.Container, error) {
	cfg, err := config.LoadConfig(ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	Log = config.ConfigureLoggingFromConfig(cfg)
	opts = append([]container.Option{container.WithLogger(logging.NewLogrusAdapterFromLogger(Log))}, opts...)

	return container.NewContainer(ctx, cfg, opts...)
}
