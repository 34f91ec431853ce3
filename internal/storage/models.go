// Package storage provides database models and repositories for the support engine.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ResponseSource identifies where an assistant response came from.
type ResponseSource string

const (
	// SourceQADatabase marks answers served verbatim from the FAQ store.
	SourceQADatabase ResponseSource = "qa_database"
	// SourceAI marks answers produced by the generative fallback.
	SourceAI ResponseSource = "ai"
)

// MessageRole identifies the author of a chat message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// FaqEntry is a curated question/answer pair in the knowledge base.
// Only entries with Active=true participate in matching. ViewCount is
// advisory and mutated exclusively through FaqRepository.IncrementViewCount.
type FaqEntry struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Question   string     `json:"question" db:"question"`
	Answer     string     `json:"answer" db:"answer"`
	Keywords   []string   `json:"keywords" db:"keywords"`
	CategoryID *uuid.UUID `json:"category_id,omitempty" db:"category_id"`
	ViewCount  int64      `json:"view_count" db:"view_count"`
	Active     bool       `json:"active" db:"active"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// IntentPattern is a staff-managed rule used to label fallback responses.
// ConfidenceThreshold is carried through for the admin surface but not
// consulted by the routing decision itself.
type IntentPattern struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	Pattern             string    `json:"pattern" db:"pattern"`
	Intent              string    `json:"intent" db:"intent"`
	ConfidenceThreshold float64   `json:"confidence_threshold" db:"confidence_threshold"`
	Active              bool      `json:"active" db:"active"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

// ChatMessage is a persisted conversation record. Assistant messages carry
// the routing outcome alongside the response text.
type ChatMessage struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	SessionID      string          `json:"session_id" db:"session_id"`
	UserID         string          `json:"user_id" db:"user_id"`
	Role           MessageRole     `json:"role" db:"role"`
	Content        string          `json:"content" db:"content"`
	Confidence     float64         `json:"confidence" db:"confidence"`
	ResponseSource ResponseSource  `json:"response_source" db:"response_source"`
	MatchedIntent  string          `json:"matched_intent" db:"matched_intent"`
	RelatedEntries []uuid.UUID     `json:"related_entries" db:"related_entries"`
	Metadata       json.RawMessage `json:"metadata" db:"metadata"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}

// MessageMetadata is the auxiliary payload stored with assistant messages.
type MessageMetadata struct {
	Query              string   `json:"query"`
	SuggestedQuestions []string `json:"suggested_questions"`
	HasFiles           bool     `json:"has_files,omitempty"`
	FileTypes          []string `json:"file_types,omitempty"`
}

// EncodeMetadata serializes message metadata for storage.
func EncodeMetadata(meta MessageMetadata) (json.RawMessage, error) {
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode message metadata: %w", err)
	}
	return raw, nil
}
