package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provider ModelProvider
		id       ModelID
		want     ModelID
		ok       bool
	}{
		{"default anthropic", ProviderAnthropic, "", Claude3Haiku, true},
		{"default openai", ProviderOpenAI, "", GPT4oMini, true},
		{"explicit gemini", ProviderGemini, Gemini20FlashLite, Gemini20FlashLite, true},
		{"provider mismatch", ProviderOpenAI, Claude3Haiku, "", false},
		{"unknown model", ProviderAnthropic, "claude-9", "", false},
		{"unknown provider", "acme", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			model, ok := Lookup(tt.provider, tt.id)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, model.ID)
		})
	}
}

func TestProvidersOrderedByPopularity(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []ModelProvider{ProviderAnthropic, ProviderOpenAI, ProviderGemini}, Providers())
}

func TestDefaultAnthropicModel(t *testing.T) {
	t.Parallel()
	m := SupportedModels[Claude3Haiku]
	assert.Equal(t, "claude-3-haiku-20240307", m.APIModel)
	assert.EqualValues(t, 50, m.DefaultMaxTokens)
}
