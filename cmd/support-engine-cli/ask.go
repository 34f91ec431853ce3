package main

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lookog/scoot-assist-ai/internal/cache"
	"github.com/lookog/scoot-assist-ai/internal/engine"
	"github.com/lookog/scoot-assist-ai/internal/genai"
	"github.com/lookog/scoot-assist-ai/internal/knowledge"
	"github.com/lookog/scoot-assist-ai/internal/match"
	"github.com/lookog/scoot-assist-ai/internal/routing"
	"github.com/lookog/scoot-assist-ai/internal/storage"
	"github.com/lookog/scoot-assist-ai/internal/suggest"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the support engine a question locally",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	question := args[0]

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

	eng := buildEngine(db)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Thinking..."
	s.Start()

	resp, err := eng.Answer(ctx, engine.Query{
		Text:      question,
		SessionID: uuid.New().String(),
		UserID:    "cli",
	})
	s.Stop()
	if err != nil {
		return fmt.Errorf("answer query: %w", err)
	}

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	faint := color.New(color.Faint)

	bold.Println("Answer:")
	fmt.Println(resp.Response)
	fmt.Println()

	if resp.ResponseSource == storage.SourceQADatabase {
		green.Printf("Source: FAQ database (confidence %.2f)\n", resp.Confidence)
	} else {
		yellow.Printf("Source: generative fallback (confidence %.2f)\n", resp.Confidence)
		if resp.MatchedIntent != "" {
			faint.Printf("Intent: %s\n", resp.MatchedIntent)
		}
	}

	if len(resp.SuggestedQuestions) > 0 {
		fmt.Println()
		bold.Println("You might also ask:")
		for _, q := range resp.SuggestedQuestions {
			fmt.Printf("  - %s\n", q)
		}
	}

	return nil
}

// buildEngine wires a full pipeline over an open database, mirroring the
// API server's construction.
func buildEngine(db storage.DB) *engine.Engine {
	faqRepo := storage.NewFaqRepository(db)
	patternRepo := storage.NewIntentPatternRepository(db)
	messageRepo := storage.NewMessageRepository(db)

	loader := knowledge.NewLoader(logger, faqRepo, patternRepo,
		cache.NewMemoryClient(cfg.Cache.MaxEntries), knowledge.LoaderConfig{
			FallbackToCache: cfg.Cache.SnapshotFallback,
			CacheTTL:        cfg.Cache.TTL,
		})

	matcher := match.NewMatcher(logger, match.Config{
		LexicalWeight:    cfg.Matching.LexicalWeight,
		KeywordWeight:    cfg.Matching.KeywordWeight,
		SemanticWeight:   cfg.Matching.SemanticWeight,
		SynonymScore:     cfg.Matching.SynonymScore,
		SubstringScore:   cfg.Matching.SubstringScore,
		ModelBoost:       cfg.Matching.ModelBoost,
		DifferenceBoost:  cfg.Matching.DifferenceBoost,
		TypesBoost:       cfg.Matching.TypesBoost,
		SubstringMinSize: cfg.Matching.SubstringMinSize,
	})

	var completer genai.Completer
	if cfg.GenAI.APIKey != "" {
		completer = genai.NewClient(genai.ClientConfig{
			BaseURL:    cfg.GenAI.BaseURL,
			APIKey:     cfg.GenAI.APIKey,
			Model:      cfg.GenAI.Model,
			MaxRetries: cfg.GenAI.MaxRetries,
			Timeout:    cfg.GenAI.Timeout,
		})
	}

	router := routing.NewRouter(logger, completer, faqRepo, routing.Config{
		ConfidenceThreshold: cfg.Routing.ConfidenceThreshold,
		MaxRelatedEntries:   cfg.Routing.MaxRelatedEntries,
		MaxPromptEntries:    cfg.Routing.MaxPromptEntries,
		FallbackTimeout:     cfg.Routing.FallbackTimeout,
	})

	return engine.New(logger, loader, matcher, router, suggest.NewGenerator(nil), messageRepo)
}
