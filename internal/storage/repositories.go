package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflict")
)

// DB represents a database connection interface.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// FaqRepository handles FAQ entry persistence.
type FaqRepository struct {
	db DB
}

// NewFaqRepository creates a new FAQ repository.
func NewFaqRepository(db DB) *FaqRepository {
	return &FaqRepository{db: db}
}

// Create inserts a new FAQ entry.
func (r *FaqRepository) Create(ctx context.Context, entry *FaqEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = time.Now()

	keywords, err := json.Marshal(entry.Keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}

	query := `
		INSERT INTO faq_entries (id, question, answer, keywords, category_id, view_count, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.db.ExecContext(ctx, query,
		entry.ID, entry.Question, entry.Answer, string(keywords), uuidOrNil(entry.CategoryID),
		entry.ViewCount, entry.Active, entry.CreatedAt, entry.UpdatedAt,
	)
	return err
}

// GetByID retrieves a FAQ entry by ID.
func (r *FaqRepository) GetByID(ctx context.Context, id uuid.UUID) (*FaqEntry, error) {
	query := `
		SELECT id, question, answer, keywords, category_id, view_count, active, created_at, updated_at
		FROM faq_entries WHERE id = $1
	`
	entry, err := scanFaqEntry(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return entry, err
}

// ListActive returns all active FAQ entries in insertion order.
func (r *FaqRepository) ListActive(ctx context.Context) ([]*FaqEntry, error) {
	query := `
		SELECT id, question, answer, keywords, category_id, view_count, active, created_at, updated_at
		FROM faq_entries
		WHERE active = TRUE
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active faq entries: %w", err)
	}
	defer rows.Close()

	var entries []*FaqEntry
	for rows.Next() {
		entry, err := scanFaqEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// IncrementViewCount atomically bumps an entry's view counter by one.
// The increment happens in SQL so concurrent selections of the same entry
// never lose updates.
func (r *FaqRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE faq_entries SET view_count = view_count + 1, updated_at = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate marks an entry inactive so it stops participating in matching.
func (r *FaqRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE faq_entries SET active = FALSE, updated_at = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFaqEntry(row rowScanner) (*FaqEntry, error) {
	entry := &FaqEntry{}
	var keywords string
	var categoryID sql.NullString

	err := row.Scan(
		&entry.ID, &entry.Question, &entry.Answer, &keywords, &categoryID,
		&entry.ViewCount, &entry.Active, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if keywords != "" {
		if err := json.Unmarshal([]byte(keywords), &entry.Keywords); err != nil {
			return nil, fmt.Errorf("unmarshal keywords: %w", err)
		}
	}
	if categoryID.Valid {
		if cid, err := uuid.Parse(categoryID.String); err == nil {
			entry.CategoryID = &cid
		}
	}
	return entry, nil
}

// IntentPatternRepository handles intent pattern persistence.
type IntentPatternRepository struct {
	db DB
}

// NewIntentPatternRepository creates a new intent pattern repository.
func NewIntentPatternRepository(db DB) *IntentPatternRepository {
	return &IntentPatternRepository{db: db}
}

// Create inserts a new intent pattern.
func (r *IntentPatternRepository) Create(ctx context.Context, pattern *IntentPattern) error {
	if pattern.ID == uuid.Nil {
		pattern.ID = uuid.New()
	}
	pattern.CreatedAt = time.Now()

	query := `
		INSERT INTO intent_patterns (id, pattern, intent, confidence_threshold, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		pattern.ID, pattern.Pattern, pattern.Intent,
		pattern.ConfidenceThreshold, pattern.Active, pattern.CreatedAt,
	)
	return err
}

// ListActive returns all active intent patterns in insertion order.
func (r *IntentPatternRepository) ListActive(ctx context.Context) ([]*IntentPattern, error) {
	query := `
		SELECT id, pattern, intent, confidence_threshold, active, created_at
		FROM intent_patterns
		WHERE active = TRUE
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active intent patterns: %w", err)
	}
	defer rows.Close()

	var patterns []*IntentPattern
	for rows.Next() {
		p := &IntentPattern{}
		if err := rows.Scan(
			&p.ID, &p.Pattern, &p.Intent, &p.ConfidenceThreshold, &p.Active, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

// MessageRepository handles chat message persistence.
type MessageRepository struct {
	db DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Insert stores a chat message and returns its generated ID.
func (r *MessageRepository) Insert(ctx context.Context, msg *ChatMessage) (uuid.UUID, error) {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	msg.CreatedAt = time.Now()

	related, err := json.Marshal(msg.RelatedEntries)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal related entries: %w", err)
	}
	metadata := msg.Metadata
	if metadata == nil {
		metadata = json.RawMessage("{}")
	}

	query := `
		INSERT INTO chat_messages (id, session_id, user_id, role, content, confidence,
			response_source, matched_intent, related_entries, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.db.ExecContext(ctx, query,
		msg.ID, msg.SessionID, msg.UserID, msg.Role, msg.Content, msg.Confidence,
		msg.ResponseSource, msg.MatchedIntent, string(related), string(metadata), msg.CreatedAt,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert chat message: %w", err)
	}
	return msg.ID, nil
}

// ListBySession returns all messages for a session in chronological order.
func (r *MessageRepository) ListBySession(ctx context.Context, sessionID string) ([]*ChatMessage, error) {
	query := `
		SELECT id, session_id, user_id, role, content, confidence,
			response_source, matched_intent, related_entries, metadata, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []*ChatMessage
	for rows.Next() {
		msg := &ChatMessage{}
		var related, metadata string
		if err := rows.Scan(
			&msg.ID, &msg.SessionID, &msg.UserID, &msg.Role, &msg.Content, &msg.Confidence,
			&msg.ResponseSource, &msg.MatchedIntent, &related, &metadata, &msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		if related != "" {
			if err := json.Unmarshal([]byte(related), &msg.RelatedEntries); err != nil {
				return nil, fmt.Errorf("unmarshal related entries: %w", err)
			}
		}
		msg.Metadata = json.RawMessage(metadata)
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func uuidOrNil(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return id.String()
}
