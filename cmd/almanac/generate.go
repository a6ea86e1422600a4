package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/daily-almanac/internal/config"
	"github.com/jonathan/daily-almanac/internal/generator"
	"github.com/jonathan/daily-almanac/internal/snapshot"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate fortune text from a snapshot",
	Long:  "Generates deterministic fortune text from the merged snapshot. With --key, produces one fortune for that seed key; with --user, produces today's do/do-not pair for that user.",
	RunE:  runGenerate,
}

var (
	generateSnapshotPath string
	generateKey          string
	generateUser         string
	generateSite         string
)

func init() {
	generateCmd.Flags().StringVar(&generateSnapshotPath, "snapshot", config.DefaultSnapshot, "Merged snapshot JSON")
	generateCmd.Flags().StringVarP(&generateKey, "key", "k", "", "Seed key for a single fortune")
	generateCmd.Flags().StringVarP(&generateUser, "user", "u", "", "User ID for today's do/do-not pair")
	generateCmd.Flags().StringVar(&generateSite, "site", "", "Site filter for reference links (default: "+generator.DefaultSearchSite+")")
	generateCmd.MarkFlagsOneRequired("key", "user")
	generateCmd.MarkFlagsMutuallyExclusive("key", "user")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	snap, err := snapshot.Load(generateSnapshotPath)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	bank, noref, tmpls, err := snap.Materialize()
	if err != nil {
		return fmt.Errorf("failed to materialize snapshot: %w", err)
	}

	gen := generator.New(bank, noref, tmpls)
	if generateSite != "" {
		gen.SearchSite = generateSite
	}

	if generateKey != "" {
		text, err := gen.Generate(generateKey)
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}
		fmt.Println(text)
		return nil
	}

	doText, doNotText, err := gen.DailyPair(generateUser, time.Now())
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	fmt.Printf("Do:     %s\n", doText)
	fmt.Printf("Do not: %s\n", doNotText)
	return nil
}
