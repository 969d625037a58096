package provider

import (
	"fmt"
	"net/http"

	"github.com/mohammad-safakhou/labchain/config"
	"github.com/mohammad-safakhou/labchain/provider/langchain"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// New builds the Generator selected by cfg. It returns Unavailable, not an
// error, when the provider is disabled or lacks the credentials it needs.
func New(cfg config.LLMConfig) (Generator, error) {
	model, err := newModel(cfg)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return Unavailable, nil
	}
	return langchain.New(model, langchain.Options{
		Standardize:  langchain.Tuning{Temperature: cfg.Standardize.Temperature, MaxTokens: cfg.Standardize.MaxTokens},
		Autocomplete: langchain.Tuning{Temperature: cfg.Autocomplete.Temperature, MaxTokens: cfg.Autocomplete.MaxTokens},
		Timeout:      cfg.Timeout,
	}), nil
}

func newModel(cfg config.LLMConfig) (llms.Model, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	switch cfg.Provider {
	case "", config.ProviderNone:
		return nil, nil
	case config.ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, nil
		}
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
			openai.WithHTTPClient(httpClient),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		m, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}
		return m, nil
	case config.ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, nil
		}
		opts := []anthropic.Option{
			anthropic.WithToken(cfg.APIKey),
			anthropic.WithModel(cfg.Model),
			anthropic.WithHTTPClient(httpClient),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		m, err := anthropic.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}
		return m, nil
	case config.ProviderOllama:
		opts := []ollama.Option{
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
		}
		m, err := ollama.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
