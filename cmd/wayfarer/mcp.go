package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wayfarer-labs/wayfarer/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve travel tools over the Model Context Protocol (stdio)",
	Long: `Exposes travel_search and travel_answer as MCP tools on stdio, so AI
agents can query the corpus. The corpus builds in the background; tool calls
before it is ready return a retryable error.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := buildApp(globalConfig)
		if err != nil {
			return err
		}
		defer a.Close()

		a.corpus.Start(ctx)

		server, err := mcp.NewServer(a.query)
		if err != nil {
			return err
		}
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
