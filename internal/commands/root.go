// Package commands implements the splitapp command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/mmynk/splitapp/internal/config"
	"github.com/mmynk/splitapp/pkg/logging"
)

type globalOptions struct {
	configPath string
	cfg        *config.Config
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "splitapp",
		Short: "Shared expense tracking and settlement",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			logging.Setup(cfg.Log.Level, cfg.Log.Format)
			opts.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")

	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newBalancesCommand(opts))
	rootCmd.AddCommand(newTokenCommand(opts))

	return rootCmd
}
