package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Provider API keys may live in a local .env during development.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
