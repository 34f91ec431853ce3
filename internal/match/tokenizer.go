package match

import "strings"

// stopWords are discarded before scoring. Tokens this common carry no
// matching signal and inflate lexical denominators.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true, "from": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true,
	"should": true, "could": true, "may": true, "might": true, "must": true,
	"can": true, "what": true, "which": true, "who": true, "where": true,
	"when": true, "why": true, "how": true, "about": true, "tell": true,
	"me": true, "my": true, "your": true, "our": true, "their": true,
	"this": true, "that": true, "these": true, "those": true,
	"it": true, "its": true,
}

// Tokenize lowercases the input, strips punctuation, and drops stop words
// and tokens of two characters or fewer.
func Tokenize(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		word = strings.Trim(word, ".,!?;:()[]{}'\"")
		if len(word) <= 2 || stopWords[word] {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}
