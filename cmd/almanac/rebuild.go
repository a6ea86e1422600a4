package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/daily-almanac/internal/config"
	"github.com/jonathan/daily-almanac/internal/entrylog"
	"github.com/jonathan/daily-almanac/internal/observability"
	"github.com/jonathan/daily-almanac/internal/snapshot"
	"github.com/jonathan/daily-almanac/internal/templates"
	"github.com/jonathan/daily-almanac/internal/wordbank"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the merged snapshot from the entry log",
	Long:  "Replays the entire entry log plus manual overrides into a fresh word bank and writes a versioned snapshot. Rebuilding from the same log always produces the same artifact.",
	RunE:  runRebuild,
}

var (
	rebuildConfigPath    string
	rebuildLogPath       string
	rebuildOverridesPath string
	rebuildTemplatesPath string
	rebuildOutPath       string
	rebuildWordBankPath  string
	rebuildNorefPath     string
	rebuildVerbose       bool
)

func init() {
	rebuildCmd.Flags().StringVar(&rebuildConfigPath, "config", "", "JSON config file (flags override)")
	rebuildCmd.Flags().StringVar(&rebuildLogPath, "log", "", "Entry log JSONL (default: "+config.DefaultEntryLog+")")
	rebuildCmd.Flags().StringVar(&rebuildOverridesPath, "overrides", "", "Manual override YAML (default: "+config.DefaultOverrides+")")
	rebuildCmd.Flags().StringVar(&rebuildTemplatesPath, "templates", "", "Template catalog (default: "+config.DefaultTemplates+")")
	rebuildCmd.Flags().StringVarP(&rebuildOutPath, "out", "o", "", "Snapshot output path (default: "+config.DefaultSnapshot+")")
	rebuildCmd.Flags().StringVar(&rebuildWordBankPath, "wordbank-out", "", "Standalone word bank output (default: "+config.DefaultWordBank+")")
	rebuildCmd.Flags().StringVar(&rebuildNorefPath, "noref-out", "", "Standalone no-reference output (default: "+config.DefaultNoref+")")
	rebuildCmd.Flags().BoolVarP(&rebuildVerbose, "verbose", "v", false, "Print a snapshot summary")

	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(_ *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(rebuildConfigPath)
	if err != nil {
		return err
	}
	applyRebuildFlags(cfg)

	fmt.Printf("Step 1: Loading entry log from %s\n", cfg.EntryLog)
	entries, err := entrylog.Load(cfg.EntryLog)
	if err != nil {
		return fmt.Errorf("failed to load entry log: %w", err)
	}
	fmt.Printf("  %d entries loaded\n", len(entries))

	fmt.Printf("Step 2: Loading overrides from %s\n", cfg.Overrides)
	overrides, err := wordbank.LoadOverrides(cfg.Overrides)
	if err != nil {
		return fmt.Errorf("failed to load overrides: %w", err)
	}
	fmt.Printf("  %d override categories\n", len(overrides))

	fmt.Println("Step 3: Merging word bank")
	bank, noref, err := wordbank.Rebuild(entries, overrides)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	fmt.Printf("Step 4: Loading templates from %s\n", cfg.Templates)
	tmpls, err := templates.Load(cfg.Templates)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	fmt.Printf("  %d templates loaded\n", len(tmpls))

	fmt.Printf("Step 5: Writing snapshot to %s\n", cfg.Snapshot)
	snap := snapshot.Build(bank, noref, tmpls)
	if err := snapshot.Save(cfg.Snapshot, snap); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	if err := snapshot.SaveWordBank(cfg.WordBank, bank); err != nil {
		return fmt.Errorf("failed to save word bank: %w", err)
	}
	if err := snapshot.SaveNoref(cfg.Noref, noref); err != nil {
		return fmt.Errorf("failed to save noref set: %w", err)
	}

	fmt.Printf("Snapshot %s written (%d categories, %d templates)\n",
		snap.Version[:12], len(snap.WordBank), len(snap.Templates))

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintSnapshot(snap)
	}
	return nil
}

func applyRebuildFlags(cfg *config.Config) {
	if rebuildLogPath != "" {
		cfg.EntryLog = rebuildLogPath
	}
	if rebuildOverridesPath != "" {
		cfg.Overrides = rebuildOverridesPath
	}
	if rebuildTemplatesPath != "" {
		cfg.Templates = rebuildTemplatesPath
	}
	if rebuildOutPath != "" {
		cfg.Snapshot = rebuildOutPath
	}
	if rebuildWordBankPath != "" {
		cfg.WordBank = rebuildWordBankPath
	}
	if rebuildNorefPath != "" {
		cfg.Noref = rebuildNorefPath
	}
	if rebuildVerbose {
		cfg.Verbose = true
	}
}
