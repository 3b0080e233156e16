package models

const (
	ProviderOpenAI ModelProvider = "openai"

	GPT4oMini ModelID = "gpt-4o-mini"
	GPT41Nano ModelID = "gpt-4.1-nano"
	GPT41Mini ModelID = "gpt-4.1-mini"
)

var OpenAIModels = map[ModelID]Model{
	GPT4oMini: {
		ID:               GPT4oMini,
		Name:             "GPT-4o mini",
		Provider:         ProviderOpenAI,
		APIModel:         "gpt-4o-mini",
		ContextWindow:    128_000,
		DefaultMaxTokens: 50,
	},
	GPT41Nano: {
		ID:               GPT41Nano,
		Name:             "GPT 4.1 nano",
		Provider:         ProviderOpenAI,
		APIModel:         "gpt-4.1-nano",
		ContextWindow:    1_047_576,
		DefaultMaxTokens: 50,
	},
	GPT41Mini: {
		ID:               GPT41Mini,
		Name:             "GPT 4.1 mini",
		Provider:         ProviderOpenAI,
		APIModel:         "gpt-4.1-mini",
		ContextWindow:    1_047_576,
		DefaultMaxTokens: 50,
	},
}
