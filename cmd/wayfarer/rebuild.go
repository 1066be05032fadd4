package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the embedding cache from the corpus sources",
	Long: `Normalises every configured source, re-embeds all documents and
replaces the cache on disk. Use after editing source files when the server
is not running with watch enabled.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := buildApp(globalConfig)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.corpus.Rebuild(ctx); err != nil {
			return err
		}

		fmt.Printf("Rebuilt embedding cache: %d documents (%s)\n",
			len(a.corpus.Snapshot()), globalConfig.CachePath())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}
