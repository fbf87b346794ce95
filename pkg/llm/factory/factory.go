package factory

import (
	"fmt"

	"cafe-assistant-be/pkg/llm"
	"cafe-assistant-be/pkg/llm/huggingface"
	"cafe-assistant-be/pkg/llm/ollama"
)

// ProviderSpec names one backend and its connection settings.
type ProviderSpec struct {
	Type    string // "ollama" | "huggingface"
	Model   string
	BaseURL string
	APIKey  string
}

// NewProvider builds a single provider from its spec.
func NewProvider(spec ProviderSpec) (llm.Provider, error) {
	switch spec.Type {
	case "ollama":
		baseURL := spec.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, spec.Model), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(spec.APIKey, spec.BaseURL, spec.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", spec.Type)
	}
}

// NewProviderChain builds the ordered provider list for the fallback
// chain. Order is priority order: the first spec is the primary.
func NewProviderChain(specs []ProviderSpec) ([]llm.Provider, error) {
	providers := make([]llm.Provider, 0, len(specs))
	for _, spec := range specs {
		p, err := NewProvider(spec)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("no LLM providers configured")
	}
	return providers, nil
}
