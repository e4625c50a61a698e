package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lookstack-labs/lookfmt/internal/cli/config"
	"github.com/lookstack-labs/lookfmt/internal/lsp"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the LSP server for IDE integration.

The server communicates over stdin/stdout using JSON-RPC. It publishes
lint diagnostics as documents change and serves document formatting
and quick-fix code actions.`,
		Example: `  # Start LSP server (usually called by an IDE)
  lookfmt lsp`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLSP(cmd)
		},
	}

	return cmd
}

func runLSP(cmd *cobra.Command) error {
	logger := config.GetLogger(cmd.Context())
	server := lsp.NewServerWithLogger(os.Stdin, os.Stdout, logger)
	return server.Run()
}
