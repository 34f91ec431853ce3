package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// OpenConfig holds database open settings.
type OpenConfig struct {
	Driver       string // sqlite or postgres
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// Open opens a database connection and verifies it with a ping.
func Open(ctx context.Context, cfg OpenConfig) (*sql.DB, error) {
	driverName := cfg.Driver
	dsn := cfg.DSN
	switch cfg.Driver {
	case "sqlite":
		driverName = "sqlite3"
		dsn = cfg.DSN + "?_journal_mode=WAL&_foreign_keys=on"
	case "postgres":
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", cfg.Driver, err)
	}

	return db, nil
}

// schema is shared between sqlite and postgres; the types used are the
// lowest common denominator both drivers accept.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS faq_entries (
		id TEXT PRIMARY KEY,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		keywords TEXT NOT NULL DEFAULT '[]',
		category_id TEXT,
		view_count BIGINT NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_faq_entries_active ON faq_entries(active)`,
	`CREATE INDEX IF NOT EXISTS idx_faq_entries_category ON faq_entries(category_id)`,
	`CREATE TABLE IF NOT EXISTS intent_patterns (
		id TEXT PRIMARY KEY,
		pattern TEXT NOT NULL,
		intent TEXT NOT NULL,
		confidence_threshold DOUBLE PRECISION NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_intent_patterns_active ON intent_patterns(active)`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
		response_source TEXT NOT NULL DEFAULT '',
		matched_intent TEXT NOT NULL DEFAULT '',
		related_entries TEXT NOT NULL DEFAULT '[]',
		metadata TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_session ON chat_messages(session_id)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
