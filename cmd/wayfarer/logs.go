package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	querylogsqlite "github.com/wayfarer-labs/wayfarer/internal/adapters/driven/querylog/sqlite"
	"github.com/wayfarer-labs/wayfarer/internal/core/domain"
)

var flagLogsLimit int

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recently served queries",
	Long: `Lists the most recent entries from the query log, newest first:
when each query was served, its kind, latency, how many documents grounded
the response, and the prompt.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := querylogsqlite.NewStore(globalConfig.QueryLogPath())
		if err != nil {
			return fmt.Errorf("open query log: %w", err)
		}
		defer store.Close()

		records, err := store.Recent(cmd.Context(), flagLogsLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No queries logged yet.")
			return nil
		}

		for _, rec := range records {
			fmt.Println(formatQueryRecord(rec))
		}
		return nil
	},
}

func init() {
	logsCmd.Flags().IntVar(&flagLogsLimit, "limit", 20, "maximum number of queries to show")
	rootCmd.AddCommand(logsCmd)
}

// formatQueryRecord renders one query log entry as a terminal line.
func formatQueryRecord(rec domain.QueryRecord) string {
	prompt := rec.Prompt
	if len(prompt) > 60 {
		prompt = prompt[:57] + "..."
	}
	return fmt.Sprintf("%s  %-9s  %5dms  %d docs  %s",
		rec.CreatedAt.Local().Format(time.DateTime),
		rec.Kind,
		rec.Latency.Milliseconds(),
		len(rec.DocumentIDs),
		prompt)
}
