package models

const (
	ProviderAnthropic ModelProvider = "anthropic"

	Claude3Haiku   ModelID = "claude-3-haiku"
	Claude35Haiku  ModelID = "claude-3.5-haiku"
	Claude35Sonnet ModelID = "claude-3.5-sonnet"
)

var AnthropicModels = map[ModelID]Model{
	Claude3Haiku: {
		ID:               Claude3Haiku,
		Name:             "Claude 3 Haiku",
		Provider:         ProviderAnthropic,
		APIModel:         "claude-3-haiku-20240307",
		ContextWindow:    200000,
		DefaultMaxTokens: 50,
	},
	Claude35Haiku: {
		ID:               Claude35Haiku,
		Name:             "Claude 3.5 Haiku",
		Provider:         ProviderAnthropic,
		APIModel:         "claude-3-5-haiku-latest",
		ContextWindow:    200000,
		DefaultMaxTokens: 50,
	},
	Claude35Sonnet: {
		ID:               Claude35Sonnet,
		Name:             "Claude 3.5 Sonnet",
		Provider:         ProviderAnthropic,
		APIModel:         "claude-3-5-sonnet-latest",
		ContextWindow:    200000,
		DefaultMaxTokens: 80,
	},
}
