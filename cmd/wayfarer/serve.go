package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wayfarer-labs/wayfarer/internal/adapters/driven/source"
	"github.com/wayfarer-labs/wayfarer/internal/adapters/driving/httpapi"
	"github.com/wayfarer-labs/wayfarer/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the travel query API over HTTP",
	Long: `Starts the HTTP server and builds the corpus in the background.
Requests arriving before the corpus is ready receive 503 with Retry-After.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := buildApp(globalConfig)
		if err != nil {
			return err
		}
		defer a.Close()

		// Fire-and-forget: server readiness does not wait on the build.
		a.corpus.Start(ctx)

		if globalConfig.Data.Watch {
			watcher := source.NewWatcher(globalConfig.Data.Dir, a.corpus)
			go func() {
				if err := watcher.Run(ctx); err != nil {
					logger.Warn("Source watcher stopped: %v", err)
				}
			}()
		}

		server := httpapi.NewServer(globalConfig.Server.Addr, a.query, a.auth, a.corpus)
		return server.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
