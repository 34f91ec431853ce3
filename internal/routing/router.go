// Package routing decides between serving a curated FAQ answer and
// delegating to the generative fallback.
package routing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lookog/scoot-assist-ai/internal/genai"
	"github.com/lookog/scoot-assist-ai/internal/knowledge"
	"github.com/lookog/scoot-assist-ai/internal/match"
	"github.com/lookog/scoot-assist-ai/internal/observability"
	"github.com/lookog/scoot-assist-ai/internal/storage"
)

// FallbackMessage is returned when the generative call fails. The chat
// must always produce a response; this path never raises to the caller.
const FallbackMessage = "I apologize, but I am experiencing technical difficulties. Please try again later."

const (
	// FallbackConfidence is a sentinel marking a successful generative
	// response, not a calibrated probability.
	FallbackConfidence = 0.8
	// FallbackErrorConfidence marks a failed generative call.
	FallbackErrorConfidence = 0.1
	// GeneralInquiryIntent labels fallback responses no pattern claimed.
	GeneralInquiryIntent = "general_inquiry"
)

// Config holds router settings. The confidence threshold is deliberately
// tunable; observed useful values range from 0.3 to 0.7 depending on how
// aggressive the FAQ corpus is.
type Config struct {
	ConfidenceThreshold float64
	MaxRelatedEntries   int
	MaxPromptEntries    int
	FallbackTimeout     time.Duration
}

// ViewCounter increments an entry's advisory view counter.
type ViewCounter interface {
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}

// Request carries the query fields the router needs.
type Request struct {
	Query     string
	HasFiles  bool
	FileTypes []string
}

// Decision is the routing outcome consumed by the response assembler.
type Decision struct {
	Response       string
	Confidence     float64
	Source         storage.ResponseSource
	MatchedIntent  string
	RelatedEntries []uuid.UUID
}

// Router applies the confidence threshold and produces a response from
// either the FAQ store or the generative fallback.
type Router struct {
	logger    *observability.Logger
	completer genai.Completer
	views     ViewCounter
	cfg       Config
}

// NewRouter creates a response router.
func NewRouter(logger *observability.Logger, completer genai.Completer, views ViewCounter, cfg Config) *Router {
	if cfg.ConfidenceThreshold <= 0 {
		cfg.ConfidenceThreshold = 0.4
	}
	if cfg.MaxRelatedEntries <= 0 {
		cfg.MaxRelatedEntries = 3
	}
	if cfg.MaxPromptEntries <= 0 {
		cfg.MaxPromptEntries = 10
	}
	if cfg.FallbackTimeout <= 0 {
		cfg.FallbackTimeout = 12 * time.Second
	}

	return &Router{
		logger:    logger,
		completer: completer,
		views:     views,
		cfg:       cfg,
	}
}

// Route decides the response path for a matched (or unmatched) query.
func (r *Router) Route(ctx context.Context, req Request, result *match.Result, snap *knowledge.Snapshot) Decision {
	if result != nil && result.Confidence > r.cfg.ConfidenceThreshold {
		return r.serveFaq(ctx, result, snap)
	}
	return r.serveFallback(ctx, req, snap)
}

// serveFaq returns the matched entry's answer verbatim, bumps its view
// counter, and collects related entries from the same category.
func (r *Router) serveFaq(ctx context.Context, result *match.Result, snap *knowledge.Snapshot) Decision {
	entry := result.Entry

	if r.views != nil {
		if err := r.views.IncrementViewCount(ctx, entry.ID); err != nil {
			// Advisory counter; losing an increment never fails the request.
			r.logger.Warn().Err(err).
				Str("entry_id", entry.ID.String()).
				Msg("Failed to increment view count")
		}
	}

	r.logger.Info().
		Str("entry_id", entry.ID.String()).
		Float64("confidence", result.Confidence).
		Msg("Serving FAQ answer")

	return Decision{
		Response:       entry.Answer,
		Confidence:     result.Confidence,
		Source:         storage.SourceQADatabase,
		MatchedIntent:  "",
		RelatedEntries: r.relatedEntries(entry, snap.Entries),
	}
}

// serveFallback delegates to the generative collaborator. Any failure is
// recovered locally with a fixed apologetic response.
func (r *Router) serveFallback(ctx context.Context, req Request, snap *knowledge.Snapshot) Decision {
	intent := classifyIntent(r.logger, req.Query, snap.Patterns)

	decision := Decision{
		Source:        storage.SourceAI,
		MatchedIntent: intent,
	}

	if r.completer == nil {
		r.logger.Warn().Msg("No generative fallback configured")
		decision.Response = FallbackMessage
		decision.Confidence = FallbackErrorConfidence
		return decision
	}

	callCtx, cancel := context.WithTimeout(ctx, r.cfg.FallbackTimeout)
	defer cancel()

	text, err := r.completer.Complete(callCtx, r.buildPrompt(req, snap.Entries))
	if err != nil {
		r.logger.Warn().Err(err).
			Str("intent", intent).
			Msg("Generative fallback failed, serving apologetic response")
		decision.Response = FallbackMessage
		decision.Confidence = FallbackErrorConfidence
		return decision
	}

	r.logger.Info().
		Str("intent", intent).
		Msg("Serving generative response")

	decision.Response = text
	decision.Confidence = FallbackConfidence
	return decision
}

// relatedEntries returns up to MaxRelatedEntries other active entries
// sharing the matched entry's category, in input iteration order.
func (r *Router) relatedEntries(matched *storage.FaqEntry, entries []*storage.FaqEntry) []uuid.UUID {
	if matched.CategoryID == nil {
		return nil
	}

	var related []uuid.UUID
	for _, entry := range entries {
		if entry.ID == matched.ID {
			continue
		}
		if entry.CategoryID == nil || *entry.CategoryID != *matched.CategoryID {
			continue
		}
		related = append(related, entry.ID)
		if len(related) >= r.cfg.MaxRelatedEntries {
			break
		}
	}
	return related
}

// buildPrompt formats FAQ context, an optional attachment acknowledgment,
// and the customer question for the completion endpoint.
func (r *Router) buildPrompt(req Request, entries []*storage.FaqEntry) string {
	var b strings.Builder

	b.WriteString("You are a customer support assistant for an electric scooter retailer. ")
	b.WriteString("Answer the customer's question helpfully and concisely. ")
	b.WriteString("Use the FAQ context below when it is relevant.\n\n")

	if len(entries) > 0 {
		b.WriteString("FAQ context:\n")
		limit := r.cfg.MaxPromptEntries
		if len(entries) < limit {
			limit = len(entries)
		}
		for _, entry := range entries[:limit] {
			fmt.Fprintf(&b, "Q: %s\nA: %s\n", entry.Question, entry.Answer)
		}
		b.WriteString("\n")
	}

	if req.HasFiles {
		if len(req.FileTypes) > 0 {
			fmt.Fprintf(&b, "The customer attached files of type: %s. Acknowledge the attachment in your answer.\n\n",
				strings.Join(req.FileTypes, ", "))
		} else {
			b.WriteString("The customer attached files. Acknowledge the attachment in your answer.\n\n")
		}
	}

	fmt.Fprintf(&b, "Customer question: %s\n", req.Query)
	return b.String()
}
