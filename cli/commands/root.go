// Package commands implements the overlingo command line tool.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/overlingo-project/overlingo/pkg/env"
	"github.com/overlingo-project/overlingo/pkg/logging"
)

type rootOptions struct {
	logLevel  string
	logFormat string
}

// NewRootCommand builds the command tree. Each call returns fresh flag state.
func NewRootCommand() *cobra.Command {
	options := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "overlingo",
		Short: "Detect, translate and re-typeset text in images",
		Long: `overlingo finds text regions in an image, translates each region and draws
the translation back into the same box, word-wrapped and shrunk to fit.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env.Load()
			logging.Setup(logging.Config{
				Level:  options.logLevel,
				Format: options.logFormat,
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&options.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&options.logFormat, "log-format", "console", "log format (console or json)")

	rootCmd.AddCommand(
		newRenderCommand(),
		newTranslateCommand(),
		newHarvestCommand(),
		newMergeCommand(),
	)
	return rootCmd
}
