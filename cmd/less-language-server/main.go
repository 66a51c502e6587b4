package main

import (
	"fmt"
	"os"

	"bennypowers.dev/lessls/internal/log"
	"bennypowers.dev/lessls/internal/version"
	"bennypowers.dev/lessls/lsp"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "less-language-server",
		Short:         "Language server for LESS stylesheets",
		Long:          "Speaks the Language Server Protocol on stdin and stdout.",
		Version:       version.GetFullVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			commonlog.Configure(verbosity(log.GetLevel()), nil)

			server, err := lsp.NewServer()
			if err != nil {
				return fmt.Errorf("failed to create LSP server: %w", err)
			}
			return server.RunStdio()
		},
	}

	// editors pass --stdio; it is the only transport
	cmd.Flags().Bool("stdio", true, "communicate over stdin and stdout")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	return cmd
}

// verbosity maps our level onto commonlog's, which glsp logs through
func verbosity(level log.Level) int {
	if level == log.LevelDebug {
		return 2
	}
	return 0
}
