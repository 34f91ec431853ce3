// Package engine orchestrates the chat pipeline: knowledge base load,
// matching, routing, suggestions, and response assembly.
package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lookog/scoot-assist-ai/internal/knowledge"
	"github.com/lookog/scoot-assist-ai/internal/match"
	"github.com/lookog/scoot-assist-ai/internal/observability"
	"github.com/lookog/scoot-assist-ai/internal/routing"
	"github.com/lookog/scoot-assist-ai/internal/storage"
	"github.com/lookog/scoot-assist-ai/internal/suggest"
)

// Query is one inbound customer question.
type Query struct {
	Text      string
	SessionID string
	UserID    string
	HasFiles  bool
	FileTypes []string
}

// Response is the assembled chat response.
type Response struct {
	Response           string
	Confidence         float64
	ResponseSource     storage.ResponseSource
	MatchedIntent      string
	SuggestedQuestions []string
	RelatedEntries     []uuid.UUID
	MessageID          string
}

// MessageStore persists the conversation transcript.
type MessageStore interface {
	Insert(ctx context.Context, msg *storage.ChatMessage) (uuid.UUID, error)
}

// Engine runs the full query pipeline.
type Engine struct {
	logger    *observability.Logger
	loader    *knowledge.Loader
	matcher   *match.Matcher
	router    *routing.Router
	suggester *suggest.Generator
	messages  MessageStore
}

// New creates an engine. messages may be nil, in which case responses are
// not persisted and MessageID stays empty.
func New(logger *observability.Logger, loader *knowledge.Loader, matcher *match.Matcher, router *routing.Router, suggester *suggest.Generator, messages MessageStore) *Engine {
	return &Engine{
		logger:    logger,
		loader:    loader,
		matcher:   matcher,
		router:    router,
		suggester: suggester,
		messages:  messages,
	}
}

// Answer handles one customer query end to end.
func (e *Engine) Answer(ctx context.Context, q Query) (*Response, error) {
	log := e.logger.WithSession(q.SessionID)

	snap, err := e.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("answer query: %w", err)
	}

	result := e.matcher.BestMatch(q.Text, snap.Entries)

	decision := e.router.Route(ctx, routing.Request{
		Query:     q.Text,
		HasFiles:  q.HasFiles,
		FileTypes: q.FileTypes,
	}, result, snap)

	suggestions := e.suggester.Suggest(q.Text, suggestEntries(snap.Entries))

	resp := &Response{
		Response:           decision.Response,
		Confidence:         decision.Confidence,
		ResponseSource:     decision.Source,
		MatchedIntent:      decision.MatchedIntent,
		SuggestedQuestions: suggestions,
		RelatedEntries:     decision.RelatedEntries,
	}
	resp.MessageID = e.persist(ctx, log, q, resp)

	log.Info().
		Str("source", string(resp.ResponseSource)).
		Float64("confidence", resp.Confidence).
		Msg("Query processed")

	return resp, nil
}

// persist records the assistant turn in the transcript. Persistence is
// best-effort: a storage failure is logged and the response still ships.
func (e *Engine) persist(ctx context.Context, log *observability.Logger, q Query, resp *Response) string {
	if e.messages == nil {
		return ""
	}

	meta, err := storage.EncodeMetadata(storage.MessageMetadata{
		Query:              q.Text,
		SuggestedQuestions: resp.SuggestedQuestions,
		HasFiles:           q.HasFiles,
		FileTypes:          q.FileTypes,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to encode message metadata")
	}

	id, err := e.messages.Insert(ctx, &storage.ChatMessage{
		SessionID:      q.SessionID,
		UserID:         q.UserID,
		Role:           storage.RoleAssistant,
		Content:        resp.Response,
		Confidence:     resp.Confidence,
		ResponseSource: resp.ResponseSource,
		MatchedIntent:  resp.MatchedIntent,
		RelatedEntries: resp.RelatedEntries,
		Metadata:       meta,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to persist chat message")
		return ""
	}
	return id.String()
}

func suggestEntries(entries []*storage.FaqEntry) []suggest.Entry {
	out := make([]suggest.Entry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, suggest.Entry{Question: entry.Question})
	}
	return out
}
