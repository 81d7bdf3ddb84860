package config

// Model names accepted by the Gemini drafting backend.
const (
	ModelGeminiV25Pro       = "gemini-2.5-pro"
	ModelGeminiV25Flash     = "gemini-2.5-flash"
	ModelGeminiV25FlashLite = "gemini-2.5-flash-lite"
)

func SupportedModels() []string {
	return []string{
		ModelGeminiV25Pro,
		ModelGeminiV25Flash,
		ModelGeminiV25FlashLite,
	}
}

func IsSupportedModel(model string) bool {
	for _, m := range SupportedModels() {
		if m == model {
			return true
		}
	}
	return false
}
