// Package main provides the entry point for the daily almanac CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "almanac",
	Short: "Daily fortune almanac",
	Long:  "Almanac crawls news sources for fresh vocabulary, merges it into a versioned word bank, and generates deterministic daily fortunes with reference links.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
