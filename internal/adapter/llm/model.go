package llm

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"chatbot-ai/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"

	// GroqBaseURL is Groq's OpenAI-compatible endpoint.
	GroqBaseURL = "https://api.groq.com/openai/v1"

	defaultOllamaURL = "http://localhost:11434"
	requestTimeout   = 120 * time.Second
)

// NewChatModel builds a langchaingo chat model for the configured provider.
func NewChatModel(cfg config.ChatModelConfig) (llms.Model, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("chat model name cannot be empty")
	}

	httpClient := &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	switch strings.ToLower(cfg.Provider) {
	case ProviderGroq, ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%s API key cannot be empty", cfg.Provider)
		}
		baseURL := cfg.BaseURL
		if baseURL == "" && strings.EqualFold(cfg.Provider, ProviderGroq) {
			baseURL = GroqBaseURL
		}
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
			openai.WithHTTPClient(httpClient),
		}
		if baseURL != "" {
			opts = append(opts, openai.WithBaseURL(baseURL))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s chat client: %w", cfg.Provider, err)
		}
		return model, nil

	case ProviderOllama:
		serverURL := cfg.BaseURL
		if serverURL == "" {
			serverURL = defaultOllamaURL
		}
		model, err := ollama.New(
			ollama.WithServerURL(serverURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama chat client: %w", err)
		}
		return model, nil

	default:
		return nil, fmt.Errorf("unsupported chat model provider: %q", cfg.Provider)
	}
}
