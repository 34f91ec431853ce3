package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lookog/scoot-assist-ai/internal/storage"
)

var faqCmd = &cobra.Command{
	Use:   "faq",
	Short: "Inspect FAQ entries",
}

var faqListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active FAQ entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := storage.Open(ctx, storage.OpenConfig{
			Driver: cfg.Database.Driver,
			DSN:    cfg.DatabaseDSN(),
		})
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		entries, err := storage.NewFaqRepository(db).ListActive(ctx)
		if err != nil {
			return fmt.Errorf("list entries: %w", err)
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)
		for _, e := range entries {
			bold.Println(e.Question)
			faint.Printf("  id=%s views=%d keywords=%v\n", e.ID, e.ViewCount, e.Keywords)
		}
		fmt.Printf("\n%d active entries\n", len(entries))
		return nil
	},
}

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Inspect intent patterns",
}

var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active intent patterns",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := storage.Open(ctx, storage.OpenConfig{
			Driver: cfg.Database.Driver,
			DSN:    cfg.DatabaseDSN(),
		})
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		patterns, err := storage.NewIntentPatternRepository(db).ListActive(ctx)
		if err != nil {
			return fmt.Errorf("list patterns: %w", err)
		}

		for _, p := range patterns {
			fmt.Printf("%-30s %s\n", p.Intent, p.Pattern)
		}
		fmt.Printf("\n%d active patterns\n", len(patterns))
		return nil
	},
}

func init() {
	faqCmd.AddCommand(faqListCmd)
	patternsCmd.AddCommand(patternsListCmd)
}
