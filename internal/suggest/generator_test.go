package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest_SharedTokens(t *testing.T) {
	g := NewGenerator(nil)
	entries := []Entry{
		{Question: "What is the battery range?"},
		{Question: "How do I replace the battery?"},
		{Question: "Do you sell helmets?"},
	}

	got := g.Suggest("battery problems", entries)

	assert.Len(t, got, 3)
	assert.Equal(t, "What is the battery range?", got[0])
	assert.Equal(t, "How do I replace the battery?", got[1])
	// Third slot padded from defaults.
	assert.Contains(t, defaultSuggestions, got[2])
}

func TestSuggest_CapsAtThree(t *testing.T) {
	g := NewGenerator(nil)
	entries := []Entry{
		{Question: "battery one"},
		{Question: "battery two"},
		{Question: "battery three"},
		{Question: "battery four"},
	}

	got := g.Suggest("battery", entries)

	assert.Equal(t, []string{"battery one", "battery two", "battery three"}, got)
}

func TestSuggest_PadsWhenNoOverlap(t *testing.T) {
	g := NewGenerator(nil)

	got := g.Suggest("zebra", []Entry{{Question: "What is the top speed?"}})

	assert.Equal(t, defaultSuggestions, got)
}

func TestSuggest_NoDuplicatePadding(t *testing.T) {
	g := NewGenerator([]string{"How can I track my order?", "What is your warranty policy?", "How do I contact customer support?"})
	entries := []Entry{
		{Question: "How can I track my order?"},
	}

	// The matched question already equals a padding entry; padding must
	// not repeat it.
	got := g.Suggest("track order", entries)

	assert.Len(t, got, 3)
	seen := map[string]bool{}
	for _, s := range got {
		assert.False(t, seen[s], "duplicate suggestion %q", s)
		seen[s] = true
	}
}

func TestSuggest_DuplicateEntryQuestions(t *testing.T) {
	g := NewGenerator(nil)
	// Nothing in the store enforces question uniqueness; the same text can
	// appear on more than one active entry.
	entries := []Entry{
		{Question: "How fast does the scooter go?"},
		{Question: "How fast does the scooter go?"},
		{Question: "What is the top speed?"},
	}

	got := g.Suggest("how fast is it", entries)

	assert.Len(t, got, 3)
	seen := map[string]bool{}
	for _, s := range got {
		assert.False(t, seen[s], "duplicate suggestion %q", s)
		seen[s] = true
	}
	assert.Equal(t, "How fast does the scooter go?", got[0])
}

func TestSuggest_CaseInsensitiveOverlap(t *testing.T) {
	g := NewGenerator(nil)
	entries := []Entry{{Question: "BATTERY care guide"}}

	got := g.Suggest("Battery", entries)

	assert.Equal(t, "BATTERY care guide", got[0])
}
