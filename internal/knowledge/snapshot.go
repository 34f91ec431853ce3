// Package knowledge loads the per-request knowledge base snapshot.
package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lookog/scoot-assist-ai/internal/cache"
	"github.com/lookog/scoot-assist-ai/internal/observability"
	"github.com/lookog/scoot-assist-ai/internal/storage"
)

var snapshotCacheKey = cache.Key("kb", "snapshot")

// Snapshot is the knowledge base state used for a single request: all
// active FAQ entries and all active intent patterns. Fetched fresh per
// request; no snapshot is shared across requests.
type Snapshot struct {
	Entries  []*storage.FaqEntry      `json:"entries"`
	Patterns []*storage.IntentPattern `json:"patterns"`
}

// FaqLister lists active FAQ entries.
type FaqLister interface {
	ListActive(ctx context.Context) ([]*storage.FaqEntry, error)
}

// PatternLister lists active intent patterns.
type PatternLister interface {
	ListActive(ctx context.Context) ([]*storage.IntentPattern, error)
}

// LoaderConfig holds snapshot loader settings.
type LoaderConfig struct {
	// FallbackToCache serves the last successfully loaded snapshot when
	// the store is unreachable. Off by default; the live store remains
	// the source of truth.
	FallbackToCache bool
	CacheTTL        time.Duration
}

// Loader fetches the knowledge base snapshot. Both reads are issued
// concurrently and awaited before matching begins.
type Loader struct {
	logger   *observability.Logger
	faqs     FaqLister
	patterns PatternLister
	cache    cache.Client
	cfg      LoaderConfig
}

// NewLoader creates a snapshot loader. The cache client may be nil when
// fallback is disabled.
func NewLoader(logger *observability.Logger, faqs FaqLister, patterns PatternLister, cacheClient cache.Client, cfg LoaderConfig) *Loader {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &Loader{
		logger:   logger,
		faqs:     faqs,
		patterns: patterns,
		cache:    cacheClient,
		cfg:      cfg,
	}
}

// Load fetches active entries and patterns concurrently. A store failure
// is fatal to the invocation unless cache fallback is enabled and a
// last-known-good snapshot is available.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	type entriesResult struct {
		entries []*storage.FaqEntry
		err     error
	}
	type patternsResult struct {
		patterns []*storage.IntentPattern
		err      error
	}

	entriesCh := make(chan entriesResult, 1)
	patternsCh := make(chan patternsResult, 1)

	go func() {
		entries, err := l.faqs.ListActive(ctx)
		entriesCh <- entriesResult{entries: entries, err: err}
	}()
	go func() {
		patterns, err := l.patterns.ListActive(ctx)
		patternsCh <- patternsResult{patterns: patterns, err: err}
	}()

	er := <-entriesCh
	pr := <-patternsCh

	if er.err != nil || pr.err != nil {
		err := er.err
		if err == nil {
			err = pr.err
		}

		if snap := l.cachedSnapshot(ctx); snap != nil {
			l.logger.Warn().Err(err).
				Int("cached_entries", len(snap.Entries)).
				Msg("Knowledge base fetch failed, serving cached snapshot")
			return snap, nil
		}

		return nil, fmt.Errorf("load knowledge base: %w", err)
	}

	snap := &Snapshot{Entries: er.entries, Patterns: pr.patterns}
	l.storeSnapshot(ctx, snap)

	l.logger.Debug().
		Int("entries", len(snap.Entries)).
		Int("patterns", len(snap.Patterns)).
		Msg("Knowledge base snapshot loaded")

	return snap, nil
}

// cachedSnapshot returns the last-known-good snapshot, or nil.
func (l *Loader) cachedSnapshot(ctx context.Context) *Snapshot {
	if !l.cfg.FallbackToCache || l.cache == nil {
		return nil
	}

	data, err := l.cache.Get(ctx, snapshotCacheKey)
	if err != nil {
		return nil
	}

	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		l.logger.Warn().Err(err).Msg("Cached snapshot is corrupt, ignoring")
		return nil
	}
	return snap
}

// storeSnapshot caches a successful load for fallback use.
func (l *Loader) storeSnapshot(ctx context.Context, snap *Snapshot) {
	if !l.cfg.FallbackToCache || l.cache == nil {
		return
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := l.cache.Set(ctx, snapshotCacheKey, data, l.cfg.CacheTTL); err != nil {
		l.logger.Warn().Err(err).Msg("Failed to cache knowledge base snapshot")
	}
}
