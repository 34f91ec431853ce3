package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestPostgresRepositories exercises the repositories against a real
// Postgres instance. Requires Docker; enable with TEST_POSTGRES=1.
func TestPostgresRepositories(t *testing.T) {
	if os.Getenv("TEST_POSTGRES") == "" {
		t.Skip("set TEST_POSTGRES=1 to run Postgres integration tests")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("support_engine_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(ctx, OpenConfig{Driver: "postgres", DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(ctx, db))

	faqRepo := NewFaqRepository(db)

	cat := uuid.New()
	entry := &FaqEntry{
		Question:   "Is the scooter waterproof?",
		Answer:     "It is rated IP54 for splash resistance.",
		Keywords:   []string{"waterproof", "rain"},
		CategoryID: &cat,
		Active:     true,
	}
	require.NoError(t, faqRepo.Create(ctx, entry))

	t.Run("round trip", func(t *testing.T) {
		got, err := faqRepo.GetByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, entry.Question, got.Question)
		assert.Equal(t, []string{"waterproof", "rain"}, got.Keywords)
	})

	t.Run("concurrent view count increments", func(t *testing.T) {
		const workers = 10
		errCh := make(chan error, workers)
		for i := 0; i < workers; i++ {
			go func() {
				errCh <- faqRepo.IncrementViewCount(ctx, entry.ID)
			}()
		}
		for i := 0; i < workers; i++ {
			require.NoError(t, <-errCh)
		}

		got, err := faqRepo.GetByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(workers), got.ViewCount)
	})

	t.Run("messages", func(t *testing.T) {
		msgRepo := NewMessageRepository(db)
		id, err := msgRepo.Insert(ctx, &ChatMessage{
			SessionID:      "pg-session",
			UserID:         "user-1",
			Role:           RoleAssistant,
			Content:        "answer",
			Confidence:     0.8,
			ResponseSource: SourceAI,
			MatchedIntent:  "general_inquiry",
		})
		require.NoError(t, err)

		messages, err := msgRepo.ListBySession(ctx, "pg-session")
		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.Equal(t, id, messages[0].ID)
	})
}
