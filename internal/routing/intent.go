package routing

import (
	"regexp"

	"github.com/lookog/scoot-assist-ai/internal/observability"
	"github.com/lookog/scoot-assist-ai/internal/storage"
)

// classifyIntent returns the intent of the first active pattern matching
// the query, case-insensitively. Patterns that fail to compile are skipped
// so one bad row cannot block classification.
func classifyIntent(logger *observability.Logger, query string, patterns []*storage.IntentPattern) string {
	for _, p := range patterns {
		if !p.Active {
			continue
		}
		re, err := regexp.Compile("(?i)" + p.Pattern)
		if err != nil {
			logger.Warn().Err(err).
				Str("pattern", p.Pattern).
				Str("intent", p.Intent).
				Msg("Skipping uncompilable intent pattern")
			continue
		}
		if re.MatchString(query) {
			return p.Intent
		}
	}
	return GeneralInquiryIntent
}
