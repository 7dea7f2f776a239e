package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	appConfig  Config
	logger     *zap.Logger
	configPath string
	verbose    bool
)

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "placeval",
		Short: "Birthplace prediction evaluation",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Provider API keys may live in a local .env; a missing
			// file is fine.
			_ = godotenv.Load()

			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			appConfig = cfg

			if verbose {
				logger, _ = zap.NewDevelopment()
			} else {
				logger, _ = zap.NewProduction()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")

	root.AddCommand(newBaselineCommand())
	root.AddCommand(newEvalCommand())
	root.AddCommand(newListCommand())

	return root
}
