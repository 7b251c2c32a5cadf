package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a new completion provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		// No provider configured - return nil (interpretation disabled)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: openai, ollama)", config.Provider)
	}
}
