// Command dashctl is the operator CLI of the dashboard backend: schema
// migrations, development tokens and filter debugging.
package main

import (
	"fmt"
	"os"

	"github.com/shopdash/backend/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "dashctl",
		Short:         "Shop dashboard operator CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newMigrateCmd(opts),
		newTokenCmd(),
		newFiltersCmd(),
	)
	return cmd
}

// newLogger builds the console logger used by commands that log progress
func (o *rootOptions) newLogger() (*zap.Logger, error) {
	return logger.New(&logger.Config{
		Level:      o.logLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "2006-01-02 15:04:05",
	})
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
