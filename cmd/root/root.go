// Package root contains the root command for the application.
package root

import (
	"github.com/spf13/cobra"

	"github.com/clearledgr/clearledgr-ap/internal/config"
	"github.com/clearledgr/clearledgr-ap/internal/logging"
)

var (
	// Log is the shared logger instance for commands.
	Log logging.Logger = logging.NewNop()

	// Cfg is the loaded configuration, available to all subcommands.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "clearledgr-ap",
		Short: "Extract financial facts from inbound documents.",
		Long: `clearledgr-ap classifies inbound emails, extracts vendor, amount,
invoice number and date candidates from the message and its attachments,
arbitrates between sources, and scores how likely the document matches a
known transaction.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if level, _ := cmd.Flags().GetString("log-level"); level != "" {
				cfg.Log.Level = level
			}
			Cfg = cfg
			Log = config.ConfigureLogging(cfg)
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
	}
)

// Init wires persistent flags. Called once from main before Execute.
func Init() {
	Cmd.PersistentFlags().String("log-level", "", "override the configured log level")
}
