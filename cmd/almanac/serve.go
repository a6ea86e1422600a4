package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/daily-almanac/internal/config"
	"github.com/jonathan/daily-almanac/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the fortune HTTP API",
	Long:  `Start an HTTP server that generates fortunes from the merged snapshot.`,
	RunE:  runServe,
}

var (
	servePort         int
	serveSnapshotPath string
	serveSite         string
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveSnapshotPath, "snapshot", config.DefaultSnapshot, "Merged snapshot JSON")
	serveCmd.Flags().StringVar(&serveSite, "site", "", "Site filter for reference links")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	srv, err := server.New(server.Config{
		Port:         servePort,
		SnapshotPath: serveSnapshotPath,
		SearchSite:   serveSite,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
