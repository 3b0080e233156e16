package models

import (
	"maps"
	"slices"
)

type (
	ModelID       string
	ModelProvider string
)

type Model struct {
	ID               ModelID       `json:"id"`
	Name             string        `json:"name"`
	Provider         ModelProvider `json:"provider"`
	APIModel         string        `json:"api_model"`
	ContextWindow    int64         `json:"context_window"`
	DefaultMaxTokens int64         `json:"default_max_tokens"`
}

const (
	// ForTests
	ProviderMock ModelProvider = "__mock"
)

// Providers in order of preference when none is configured.
var ProviderPopularity = map[ModelProvider]int{
	ProviderAnthropic: 1,
	ProviderOpenAI:    2,
	ProviderGemini:    3,
}

// DefaultModels is the model picked for a provider when the config names only
// the provider.
var DefaultModels = map[ModelProvider]ModelID{
	ProviderAnthropic: Claude3Haiku,
	ProviderOpenAI:    GPT4oMini,
	ProviderGemini:    Gemini20Flash,
}

var SupportedModels = map[ModelID]Model{}

func init() {
	maps.Copy(SupportedModels, AnthropicModels)
	maps.Copy(SupportedModels, OpenAIModels)
	maps.Copy(SupportedModels, GeminiModels)
}

// Providers returns the known providers ordered by popularity.
func Providers() []ModelProvider {
	providers := slices.Collect(maps.Keys(ProviderPopularity))
	slices.SortFunc(providers, func(a, b ModelProvider) int {
		return ProviderPopularity[a] - ProviderPopularity[b]
	})
	return providers
}

// Lookup resolves a model ID. An empty ID resolves to the provider default.
func Lookup(provider ModelProvider, id ModelID) (Model, bool) {
	if id == "" {
		id = DefaultModels[provider]
	}
	model, ok := SupportedModels[id]
	if !ok || model.Provider != provider {
		return Model{}, false
	}
	return model, true
}
