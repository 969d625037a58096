package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/mohammad-safakhou/labchain/config"
)

func TestUnavailable(t *testing.T) {
	if _, err := Unavailable.GenerateProtocol(context.Background(), "Step 1", nil); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if _, err := Unavailable.SuggestNextStep(context.Background(), nil, ""); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if IsAvailable(Unavailable) || IsAvailable(nil) {
		t.Fatalf("Unavailable must not report as available")
	}
}

func TestNewSelectsBackend(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LLMConfig
		available bool
		wantErr   bool
	}{
		{name: "disabled", cfg: config.LLMConfig{Provider: config.ProviderNone}},
		{name: "empty provider", cfg: config.LLMConfig{}},
		{name: "openai without key", cfg: config.LLMConfig{Provider: config.ProviderOpenAI, Model: "gpt-4o-mini"}},
		{name: "anthropic without key", cfg: config.LLMConfig{Provider: config.ProviderAnthropic}},
		{name: "openai with key", cfg: config.LLMConfig{Provider: config.ProviderOpenAI, APIKey: "sk-test", Model: "gpt-4o-mini"}, available: true},
		{name: "anthropic with key", cfg: config.LLMConfig{Provider: config.ProviderAnthropic, APIKey: "key", Model: "claude-3-haiku-20240307"}, available: true},
		{name: "ollama", cfg: config.LLMConfig{Provider: config.ProviderOllama, Model: "llama3", BaseURL: "http://localhost:11434"}, available: true},
		{name: "unknown", cfg: config.LLMConfig{Provider: "palm"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if IsAvailable(g) != tt.available {
				t.Fatalf("expected available=%v", tt.available)
			}
		})
	}
}
