package models

const (
	ProviderGemini ModelProvider = "gemini"

	Gemini20Flash     ModelID = "gemini-2.0-flash"
	Gemini20FlashLite ModelID = "gemini-2.0-flash-lite"
)

var GeminiModels = map[ModelID]Model{
	Gemini20Flash: {
		ID:               Gemini20Flash,
		Name:             "Gemini 2.0 Flash",
		Provider:         ProviderGemini,
		APIModel:         "gemini-2.0-flash",
		ContextWindow:    1_000_000,
		DefaultMaxTokens: 50,
	},
	Gemini20FlashLite: {
		ID:               Gemini20FlashLite,
		Name:             "Gemini 2.0 Flash Lite",
		Provider:         ProviderGemini,
		APIModel:         "gemini-2.0-flash-lite",
		ContextWindow:    1_000_000,
		DefaultMaxTokens: 50,
	},
}
