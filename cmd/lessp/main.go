// Command lessp parses LESS stylesheets from the command line
package main

import (
	"os"

	"bennypowers.dev/lessls/internal/log"
	"bennypowers.dev/lessls/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "lessp",
		Short:         "Parse and check LESS stylesheets",
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "debug, info, warn or error")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCheckCmd())

	return rootCmd
}
