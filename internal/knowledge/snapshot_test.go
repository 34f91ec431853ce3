package knowledge

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookog/scoot-assist-ai/internal/cache"
	"github.com/lookog/scoot-assist-ai/internal/observability"
	"github.com/lookog/scoot-assist-ai/internal/storage"
)

func newTestLogger() *observability.Logger {
	return observability.NewLogger(observability.LogConfig{
		Level:  "error",
		Output: io.Discard,
	})
}

type fakeFaqLister struct {
	entries []*storage.FaqEntry
	err     error
}

func (f *fakeFaqLister) ListActive(ctx context.Context) ([]*storage.FaqEntry, error) {
	return f.entries, f.err
}

type fakePatternLister struct {
	patterns []*storage.IntentPattern
	err      error
}

func (f *fakePatternLister) ListActive(ctx context.Context) ([]*storage.IntentPattern, error) {
	return f.patterns, f.err
}

func TestLoad_Success(t *testing.T) {
	entries := []*storage.FaqEntry{{ID: uuid.New(), Question: "q", Answer: "a", Active: true}}
	patterns := []*storage.IntentPattern{{ID: uuid.New(), Pattern: "order", Intent: "orders", Active: true}}

	loader := NewLoader(newTestLogger(),
		&fakeFaqLister{entries: entries},
		&fakePatternLister{patterns: patterns},
		nil, LoaderConfig{})

	snap, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, entries, snap.Entries)
	assert.Equal(t, patterns, snap.Patterns)
}

func TestLoad_EntriesErrorFatal(t *testing.T) {
	loader := NewLoader(newTestLogger(),
		&fakeFaqLister{err: errors.New("connection refused")},
		&fakePatternLister{},
		nil, LoaderConfig{})

	_, err := loader.Load(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load knowledge base")
}

func TestLoad_PatternsErrorFatal(t *testing.T) {
	loader := NewLoader(newTestLogger(),
		&fakeFaqLister{},
		&fakePatternLister{err: errors.New("timeout")},
		nil, LoaderConfig{})

	_, err := loader.Load(context.Background())

	require.Error(t, err)
}

func TestLoad_CacheFallback(t *testing.T) {
	mem := cache.NewMemoryClient(10)
	entries := []*storage.FaqEntry{{ID: uuid.New(), Question: "cached q", Answer: "cached a", Active: true}}
	faqs := &fakeFaqLister{entries: entries}

	loader := NewLoader(newTestLogger(), faqs, &fakePatternLister{}, mem,
		LoaderConfig{FallbackToCache: true})

	// First load succeeds and populates the cache.
	_, err := loader.Load(context.Background())
	require.NoError(t, err)

	// Store goes away; the cached snapshot is served instead.
	faqs.err = errors.New("connection refused")
	snap, err := loader.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, "cached q", snap.Entries[0].Question)
}

func TestLoad_CacheFallbackDisabled(t *testing.T) {
	mem := cache.NewMemoryClient(10)
	faqs := &fakeFaqLister{entries: []*storage.FaqEntry{{ID: uuid.New(), Question: "q"}}}

	loader := NewLoader(newTestLogger(), faqs, &fakePatternLister{}, mem, LoaderConfig{})

	_, err := loader.Load(context.Background())
	require.NoError(t, err)

	faqs.err = errors.New("connection refused")
	_, err = loader.Load(context.Background())

	// Fallback off: the failure propagates even with a warm cache.
	require.Error(t, err)
}

func TestLoad_EmptyKnowledgeBaseIsNotAnError(t *testing.T) {
	loader := NewLoader(newTestLogger(), &fakeFaqLister{}, &fakePatternLister{}, nil, LoaderConfig{})

	snap, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, snap.Entries)
	assert.Empty(t, snap.Patterns)
}
