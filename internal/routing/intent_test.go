package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lookog/scoot-assist-ai/internal/storage"
)

func pattern(expr, intent string, active bool) *storage.IntentPattern {
	return &storage.IntentPattern{Pattern: expr, Intent: intent, Active: active}
}

func TestClassifyIntent(t *testing.T) {
	logger := newTestLogger()

	patterns := []*storage.IntentPattern{
		pattern(`track.*order`, "order_tracking", true),
		pattern(`refund|return`, "returns", true),
		pattern(`warranty`, "warranty", true),
	}

	tests := []struct {
		query string
		want  string
	}{
		{"Where can I track my order?", "order_tracking"},
		{"TRACK my ORDER please", "order_tracking"},
		{"I want a refund", "returns"},
		{"does the warranty cover water damage", "warranty"},
		{"hello there", "general_inquiry"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyIntent(logger, tt.query, patterns))
		})
	}
}

func TestClassifyIntent_FirstMatchWins(t *testing.T) {
	logger := newTestLogger()

	patterns := []*storage.IntentPattern{
		pattern(`order`, "first", true),
		pattern(`order`, "second", true),
	}

	assert.Equal(t, "first", classifyIntent(logger, "my order", patterns))
}

func TestClassifyIntent_SkipsInactiveAndInvalid(t *testing.T) {
	logger := newTestLogger()

	patterns := []*storage.IntentPattern{
		pattern(`order`, "inactive", false),
		pattern(`[unclosed`, "broken", true),
		pattern(`order`, "valid", true),
	}

	assert.Equal(t, "valid", classifyIntent(logger, "my order", patterns))
}

func TestClassifyIntent_NoPatterns(t *testing.T) {
	assert.Equal(t, GeneralInquiryIntent, classifyIntent(newTestLogger(), "anything", nil))
}
