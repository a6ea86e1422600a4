package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/daily-almanac/internal/config"
	"github.com/jonathan/daily-almanac/internal/crawl"
	"github.com/jonathan/daily-almanac/internal/db"
	"github.com/jonathan/daily-almanac/internal/entrylog"
	"github.com/jonathan/daily-almanac/internal/extraction"
	"github.com/jonathan/daily-almanac/internal/observability"
)

var fetchUpdatesCmd = &cobra.Command{
	Use:   "fetch-updates",
	Short: "Crawl sources and append new entries to the entry log",
	Long:  "Diffs source listings against the entry log, fetches each new article once, runs entity extraction, and appends one entry per link. Links already logged are never re-fetched, even if their extraction failed.",
	RunE:  runFetchUpdates,
}

var (
	fetchConfigPath  string
	fetchSourcesPath string
	fetchLogPath     string
	fetchAPIKey      string
	fetchProvider    string
	fetchNEREndpoint string
	fetchWorkers     int
	fetchUseBrowser  bool
	fetchVerbose     bool
)

func init() {
	fetchUpdatesCmd.Flags().StringVar(&fetchConfigPath, "config", "", "JSON config file (flags override)")
	fetchUpdatesCmd.Flags().StringVar(&fetchSourcesPath, "sources", "", "Source list YAML (default: "+config.DefaultSources+")")
	fetchUpdatesCmd.Flags().StringVar(&fetchLogPath, "log", "", "Entry log JSONL (default: "+config.DefaultEntryLog+")")
	fetchUpdatesCmd.Flags().StringVar(&fetchAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	fetchUpdatesCmd.Flags().StringVar(&fetchProvider, "provider", "", "Extraction provider: gemini or remote (default: gemini)")
	fetchUpdatesCmd.Flags().StringVar(&fetchNEREndpoint, "ner-endpoint", "", "Endpoint URL for the remote provider")
	fetchUpdatesCmd.Flags().IntVar(&fetchWorkers, "workers", 0, fmt.Sprintf("Concurrent fetch+extract tasks (default: %d)", crawl.DefaultWorkers))
	fetchUpdatesCmd.Flags().BoolVar(&fetchUseBrowser, "use-browser", false, "Render thin pages with a headless browser before extraction")
	fetchUpdatesCmd.Flags().BoolVarP(&fetchVerbose, "verbose", "v", false, "Print detailed progress")

	rootCmd.AddCommand(fetchUpdatesCmd)
}

func runFetchUpdates(_ *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(fetchConfigPath)
	if err != nil {
		return err
	}
	applyFetchFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()

	extractor, closeExtractor, err := newExtractor(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeExtractor()

	fmt.Printf("Step 1: Loading entry log from %s\n", cfg.EntryLog)
	known, err := entrylog.Load(cfg.EntryLog)
	if err != nil {
		return fmt.Errorf("failed to load entry log: %w", err)
	}
	fmt.Printf("  %d entries known\n", len(known))

	fmt.Printf("Step 2: Loading sources from %s\n", cfg.Sources)
	sources, err := crawl.LoadSources(cfg.Sources)
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}
	fmt.Printf("  %d sources configured\n", len(sources))

	fmt.Println("Step 3: Crawling new links")
	crawler := &crawl.Crawler{
		Extractor:  extractor,
		Workers:    cfg.Workers,
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	}
	entries, err := crawler.GetUpdates(ctx, known, sources)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("  No new links found")
		return nil
	}

	fmt.Printf("Step 4: Appending %d entries to %s\n", len(entries), cfg.EntryLog)
	if err := entrylog.Append(cfg.EntryLog, entries); err != nil {
		return fmt.Errorf("failed to append entries: %w", err)
	}

	recordCrawlRun(ctx, cfg, entries)

	observability.NewPrinter(os.Stdout).PrintCrawlSummary(entries)
	return nil
}

// applyFetchFlags overlays explicitly set flags onto the file config.
func applyFetchFlags(cfg *config.Config) {
	if fetchSourcesPath != "" {
		cfg.Sources = fetchSourcesPath
	}
	if fetchLogPath != "" {
		cfg.EntryLog = fetchLogPath
	}
	if fetchAPIKey != "" {
		cfg.APIKey = fetchAPIKey
	}
	if fetchProvider != "" {
		cfg.Provider = fetchProvider
	}
	if fetchNEREndpoint != "" {
		cfg.NEREndpoint = fetchNEREndpoint
	}
	if fetchWorkers > 0 {
		cfg.Workers = fetchWorkers
	}
	if fetchUseBrowser {
		cfg.UseBrowser = true
	}
	if fetchVerbose {
		cfg.Verbose = true
	}
}

// newExtractor builds the configured extraction provider. The returned
// cleanup function is always safe to call.
func newExtractor(ctx context.Context, cfg *config.Config) (extraction.Extractor, func(), error) {
	noop := func() {}

	switch cfg.Provider {
	case "remote":
		remote, err := extraction.NewRemoteNERExtractor(cfg.NEREndpoint)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create remote extractor: %w", err)
		}
		return remote, noop, nil
	default:
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			return nil, noop, fmt.Errorf("API key required: set --api-key flag or GEMINI_API_KEY environment variable")
		}
		gemini, err := extraction.NewGeminiExtractor(ctx, apiKey, extraction.DefaultGeminiModel)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create Gemini extractor: %w", err)
		}
		return gemini, func() { _ = gemini.Close() }, nil
	}
}

// recordCrawlRun stores the run in PostgreSQL when DATABASE_URL is
// configured. History is best effort; failures never fail the crawl.
func recordCrawlRun(ctx context.Context, cfg *config.Config, entries []entrylog.Entry) {
	databaseURL := cfg.DatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: crawl history disabled: %v\n", err)
		return
	}
	defer database.Close()

	runID, err := database.CreateRun(ctx, "cli")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record crawl run: %v\n", err)
		return
	}
	if err := database.SaveArtifact(ctx, runID, db.StepEntries, db.CategoryCrawl, entries); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record crawl entries: %v\n", err)
	}
	if err := database.CompleteRun(ctx, runID, "completed"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to complete crawl run: %v\n", err)
	}
}

// loadMergedConfig loads the optional JSON config and fills defaults.
func loadMergedConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyDefaults()
	return cfg, nil
}
