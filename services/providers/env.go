package providers

// Credential env var per provider. Presence of the value gates
// auto-selection eligibility; validity is only discovered at call time.
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvGroqAPIKey   = "GROQ_API_KEY"
)

// CredentialEnvVar returns the environment variable holding the
// credential for a provider.
func CredentialEnvVar(id ProviderID) string {
	switch id {
	case ProviderGemini:
		return EnvGeminiAPIKey
	case ProviderOpenAI:
		return EnvOpenAIAPIKey
	case ProviderGroq:
		return EnvGroqAPIKey
	default:
		return ""
	}
}
