package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docnav/internal/adapters/driving/mcp"
	"github.com/custodia-labs/docnav/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start a streamable HTTP server instead.
Use --watch to rebuild the corpus when files change.

Examples:
  # Stdio mode (default)
  docnav mcp serve --root ./docs

  # HTTP mode, rebuilding on changes
  docnav mcp serve --root ./docs --port 8080 --watch`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().BoolVarP(&globalOpts.Watch, "watch", "w", false, "rebuild when corpus files change")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	s, err := corpusServices()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Build the first snapshot now so a bad corpus root fails at startup.
	report, err := s.Corpus.Report(ctx)
	if err != nil {
		return fmt.Errorf("initial build: %w", err)
	}
	logger.Info("serving snapshot %s with %d documents", report.Generation, report.Documents)

	if s.Refresher != nil {
		go func() {
			if err := s.Refresher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("refresher stopped: %v", err)
			}
		}()
		defer s.Refresher.Stop() //nolint:errcheck
	}

	ports := &mcp.Ports{
		Corpus: s.Corpus,
		Search: s.Search,
		Links:  s.Links,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err != nil {
			return fmt.Errorf("listen on port %d: %w", port, err)
		}
		// Stdout stays clean; stdio mode uses it for the protocol.
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", ln.Addr())
		return server.Serve(ctx, ln)
	}

	return server.Run(ctx)
}
