package factory

import (
	"fmt"

	"docchat-be/pkg/llm"
	"docchat-be/pkg/llm/groq"
	"docchat-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, groqApiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "groq":
		if groqApiKey == "" {
			return nil, fmt.Errorf("groq provider requires an API key")
		}
		return groq.NewGroqProvider(groqApiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
