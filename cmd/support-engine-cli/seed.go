package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lookog/scoot-assist-ai/internal/storage"
)

// seedFile is the YAML fixture format consumed by the seed command.
type seedFile struct {
	Entries []struct {
		Question string   `yaml:"question"`
		Answer   string   `yaml:"answer"`
		Keywords []string `yaml:"keywords"`
		Category string   `yaml:"category"`
	} `yaml:"entries"`
	Patterns []struct {
		Pattern string `yaml:"pattern"`
		Intent  string `yaml:"intent"`
	} `yaml:"patterns"`
}

var seedCmd = &cobra.Command{
	Use:   "seed [fixture.yaml]",
	Short: "Load FAQ entries and intent patterns from a YAML fixture",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}

	var fixture seedFile
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}

	db, err := storage.Open(ctx, storage.OpenConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.DatabaseDSN(),
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := storage.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	faqRepo := storage.NewFaqRepository(db)
	patternRepo := storage.NewIntentPatternRepository(db)

	// Category names map to deterministic IDs so entries seeded in separate
	// runs still share categories.
	categories := make(map[string]uuid.UUID)

	bar := progressbar.NewOptions(len(fixture.Entries)+len(fixture.Patterns),
		progressbar.OptionSetDescription("Seeding knowledge base"),
		progressbar.OptionShowCount(),
	)

	for _, e := range fixture.Entries {
		entry := &storage.FaqEntry{
			Question: e.Question,
			Answer:   e.Answer,
			Keywords: e.Keywords,
			Active:   true,
		}
		if e.Category != "" {
			id, ok := categories[e.Category]
			if !ok {
				id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(e.Category))
				categories[e.Category] = id
			}
			entry.CategoryID = &id
		}
		if err := faqRepo.Create(ctx, entry); err != nil {
			return fmt.Errorf("seed entry %q: %w", e.Question, err)
		}
		_ = bar.Add(1)
	}

	for _, p := range fixture.Patterns {
		pattern := &storage.IntentPattern{
			Pattern: p.Pattern,
			Intent:  p.Intent,
			Active:  true,
		}
		if err := patternRepo.Create(ctx, pattern); err != nil {
			return fmt.Errorf("seed pattern %q: %w", p.Pattern, err)
		}
		_ = bar.Add(1)
	}

	fmt.Println()
	color.Green("Seeded %d entries and %d patterns", len(fixture.Entries), len(fixture.Patterns))
	return nil
}
