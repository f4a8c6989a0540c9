package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/khanglvm/quickfind/internal/mcp"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the 'serve' command for running the stdio server.
//
// The server exposes 5 tools: search, did_you_mean, record_interaction,
// session_suggestions and explain.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio transport)",
		Long: `Start the quickfind server using stdio transport.

The server speaks JSON-RPC 2.0 (MCP tools protocol) and exposes 5 tools:
  • search              - Rank catalog items against a query
  • did_you_mean        - Spelling corrections from the catalog
  • record_interaction  - Record the item picked for a query
  • session_suggestions - Recent queries and categories
  • explain             - Why an item matches a query

One server serves one session. Picks are saved to the history database
when history is enabled.`,
		Example: `  # Run directly
  quickfind serve --catalog algorithms.jsonl

  # Add to an MCP client
  claude mcp add quickfind -- quickfind serve --catalog ~/algorithms.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	return cmd
}

// runServe starts the server with stdio transport and signal handling.
// Implements graceful shutdown on SIGINT/SIGTERM/SIGQUIT.
func runServe(cmd *cobra.Command) error {
	ws, err := openWorkspace(cmd, true)
	if err != nil {
		return err
	}
	defer ws.Close()

	options := []mcp.ServerOption{mcp.WithSession(ws.session)}
	if ws.tracker != nil {
		options = append(options, mcp.WithTracker(ws.tracker), mcp.WithStorage(ws.store))
	}
	server := mcp.NewServer(ws.engine, ws.items, ws.cfg.Search, options...)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
	}()

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v, shutting down gracefully...", sig)
		if err := server.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
			return err
		}
		return nil

	case err := <-errChan:
		// stdin closed or read error
		if closeErr := server.Close(); closeErr != nil {
			log.Printf("Error during cleanup: %v", closeErr)
		}
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}
