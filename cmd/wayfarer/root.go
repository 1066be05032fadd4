package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfarer-labs/wayfarer/internal/config"
	"github.com/wayfarer-labs/wayfarer/internal/logger"
)

var (
	flagConfig  string
	flagVerbose bool

	globalConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wayfarer",
	Short: "Retrieval-augmented travel knowledge backend",
	Long: `Wayfarer serves travel queries grounded on a fixed corpus of tours,
country profiles and heritage sites. The corpus is embedded once, cached on
disk, and searched by cosine similarity at query time.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)

		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		path := flagConfig
		if path == "" {
			var err error
			path, err = config.DefaultPath()
			if err != nil {
				return err
			}
		}

		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		globalConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.wayfarer/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
}
