// Package match scores free-text queries against the FAQ knowledge base.
package match

import (
	"math"
	"strings"

	"github.com/lookog/scoot-assist-ai/internal/observability"
	"github.com/lookog/scoot-assist-ai/internal/storage"
)

// Config holds the matcher's scoring weights and heuristics. The values
// were tuned empirically against the retailer's FAQ corpus; override them
// through configuration rather than editing the defaults.
type Config struct {
	LexicalWeight  float64
	KeywordWeight  float64
	SemanticWeight float64

	// Per-token semantic contributions.
	SynonymScore   float64
	SubstringScore float64

	// Literal co-occurrence boosts for known FAQ phrasing.
	ModelBoost      float64
	DifferenceBoost float64
	TypesBoost      float64

	// SubstringMinSize is the minimum token length (exclusive lower bound
	// is SubstringMinSize-1) for substring containment to count.
	SubstringMinSize int
}

// DefaultConfig returns the tuned default weights.
func DefaultConfig() Config {
	return Config{
		LexicalWeight:    0.6,
		KeywordWeight:    0.8,
		SemanticWeight:   1.0,
		SynonymScore:     0.8,
		SubstringScore:   0.6,
		ModelBoost:       0.5,
		DifferenceBoost:  0.5,
		TypesBoost:       0.3,
		SubstringMinSize: 4,
	}
}

// Result references the best-matching FAQ entry with its confidence and
// the per-signal scores that produced it. Ephemeral, never persisted.
type Result struct {
	Entry      *storage.FaqEntry
	Confidence float64
	Lexical    float64
	Keyword    float64
	Semantic   float64
}

// Matcher scores FAQ entries against queries using three independent
// signals: lexical overlap, keyword overlap, and synonym-aware semantic
// overlap.
type Matcher struct {
	logger *observability.Logger
	cfg    Config
}

// NewMatcher creates a matcher with the given config. Zero-valued weights
// are replaced with defaults.
func NewMatcher(logger *observability.Logger, cfg Config) *Matcher {
	def := DefaultConfig()
	if cfg.LexicalWeight <= 0 {
		cfg.LexicalWeight = def.LexicalWeight
	}
	if cfg.KeywordWeight <= 0 {
		cfg.KeywordWeight = def.KeywordWeight
	}
	if cfg.SemanticWeight <= 0 {
		cfg.SemanticWeight = def.SemanticWeight
	}
	if cfg.SynonymScore <= 0 {
		cfg.SynonymScore = def.SynonymScore
	}
	if cfg.SubstringScore <= 0 {
		cfg.SubstringScore = def.SubstringScore
	}
	if cfg.SubstringMinSize <= 0 {
		cfg.SubstringMinSize = def.SubstringMinSize
	}

	return &Matcher{logger: logger, cfg: cfg}
}

// BestMatch returns the entry with the strictly highest combined score, or
// nil when the entry set is empty or nothing scores above zero. Ties keep
// the first-seen candidate, so iteration order is stable with input order.
func (m *Matcher) BestMatch(query string, entries []*storage.FaqEntry) *Result {
	queryTokens := Tokenize(query)

	var best *Result
	for _, entry := range entries {
		questionTokens := Tokenize(entry.Question)

		lexical := m.lexicalScore(queryTokens, questionTokens)
		keyword := m.keywordScore(queryTokens, entry.Keywords)
		semantic := m.semanticScore(query, entry.Question, queryTokens, questionTokens)

		score := math.Max(
			lexical*m.cfg.LexicalWeight,
			math.Max(keyword*m.cfg.KeywordWeight, semantic*m.cfg.SemanticWeight),
		)

		if best == nil || score > best.Confidence {
			best = &Result{
				Entry:      entry,
				Confidence: score,
				Lexical:    lexical,
				Keyword:    keyword,
				Semantic:   semantic,
			}
		}
	}

	if best == nil || best.Confidence <= 0 {
		return nil
	}

	m.logger.Debug().
		Str("question", best.Entry.Question).
		Float64("confidence", best.Confidence).
		Float64("lexical", best.Lexical).
		Float64("keyword", best.Keyword).
		Float64("semantic", best.Semantic).
		Msg("Best FAQ match")

	return best
}

// lexicalScore measures token overlap between query and question.
// Exact matches count 1.0, partial matches (either token containing the
// other) count 0.5, normalized by the larger token set.
func (m *Matcher) lexicalScore(queryTokens, questionTokens []string) float64 {
	if len(queryTokens) == 0 || len(questionTokens) == 0 {
		return 0
	}

	var exact, partial float64
	for _, qt := range queryTokens {
		matched := false
		for _, et := range questionTokens {
			if qt == et {
				exact++
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		for _, et := range questionTokens {
			if strings.Contains(qt, et) || strings.Contains(et, qt) {
				partial++
				break
			}
		}
	}

	denom := float64(len(queryTokens))
	if float64(len(questionTokens)) > denom {
		denom = float64(len(questionTokens))
	}
	return (exact + 0.5*partial) / denom
}

// keywordScore measures what fraction of the entry's keywords overlap the
// query tokens, where overlap is containment either way or a synonym link.
func (m *Matcher) keywordScore(queryTokens []string, keywords []string) float64 {
	if len(keywords) == 0 || len(queryTokens) == 0 {
		return 0
	}

	matched := 0
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		for _, qt := range queryTokens {
			if strings.Contains(qt, kw) || strings.Contains(kw, qt) || Similar(qt, kw) {
				matched++
				break
			}
		}
	}

	return float64(matched) / float64(len(keywords))
}

// semanticScore compares query tokens to question tokens, taking the best
// contribution per query token: exact 1.0, synonym link, or substring
// containment when both tokens are long enough. Literal co-occurrence
// boosts cover phrasing the FAQ corpus is known to use.
func (m *Matcher) semanticScore(query, question string, queryTokens, questionTokens []string) float64 {
	if len(queryTokens) == 0 {
		return 0
	}

	var sum float64
	for _, qt := range queryTokens {
		var tokenBest float64
		for _, et := range questionTokens {
			var contribution float64
			switch {
			case qt == et:
				contribution = 1.0
			case Similar(qt, et):
				contribution = m.cfg.SynonymScore
			case len(qt) >= m.cfg.SubstringMinSize && len(et) >= m.cfg.SubstringMinSize &&
				(strings.Contains(qt, et) || strings.Contains(et, qt)):
				contribution = m.cfg.SubstringScore
			}
			if contribution > tokenBest {
				tokenBest = contribution
			}
		}
		sum += tokenBest
	}

	score := sum / float64(len(queryTokens))
	if score > 1.0 {
		score = 1.0
	}

	queryLower := strings.ToLower(query)
	questionLower := strings.ToLower(question)
	if strings.Contains(queryLower, "model") && strings.Contains(questionLower, "model") {
		score += m.cfg.ModelBoost
	}
	if strings.Contains(queryLower, "difference") && strings.Contains(questionLower, "difference") {
		score += m.cfg.DifferenceBoost
	}
	if strings.Contains(queryLower, "types") && strings.Contains(questionLower, "types") {
		score += m.cfg.TypesBoost
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}
