// Package suggest produces follow-up question suggestions shown alongside
// every chat response.
package suggest

import "strings"

const maxSuggestions = 3

// defaultSuggestions pad the list when too few entries share a token with
// the query. They cover the evergreen support topics.
var defaultSuggestions = []string{
	"How can I track my order?",
	"What is your warranty policy?",
	"How do I contact customer support?",
}

// Entry is the minimal view of an FAQ entry the generator needs.
type Entry struct {
	Question string
}

// Generator proposes related questions from the knowledge base.
//
// Tokenization here is plain whitespace splitting, coarser than the
// matcher's: suggestions only need topical overlap, and short words like
// "go" or "it" linking a query to a question is acceptable noise.
type Generator struct {
	padding []string
}

// NewGenerator creates a suggestion generator. A nil padding slice selects
// the built-in defaults.
func NewGenerator(padding []string) *Generator {
	if padding == nil {
		padding = defaultSuggestions
	}
	return &Generator{padding: padding}
}

// Suggest returns up to three entry questions sharing a token with the
// query, padded with static suggestions when fewer are found.
func (g *Generator) Suggest(query string, entries []Entry) []string {
	queryTokens := tokenSet(query)

	var suggestions []string
	for _, entry := range entries {
		if len(suggestions) >= maxSuggestions {
			break
		}
		if overlaps(queryTokens, entry.Question) && !contains(suggestions, entry.Question) {
			suggestions = append(suggestions, entry.Question)
		}
	}

	for _, s := range g.padding {
		if len(suggestions) >= maxSuggestions {
			break
		}
		if !contains(suggestions, s) {
			suggestions = append(suggestions, s)
		}
	}

	return suggestions
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		set[tok] = struct{}{}
	}
	return set
}

func overlaps(queryTokens map[string]struct{}, question string) bool {
	for _, tok := range strings.Fields(strings.ToLower(question)) {
		if _, ok := queryTokens[tok]; ok {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
