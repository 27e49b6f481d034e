package llm

import (
	"strings"
	"testing"
)

func TestNewProviderUnsupported(t *testing.T) {
	_, err := NewProvider("anthropic", "some-model")
	if err == nil {
		t.Fatal("expected error for unsupported provider")
	}
	if !strings.Contains(err.Error(), "unsupported provider") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewProviderOpenAIRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewProvider("openai", "gpt-4-turbo"); err == nil {
		t.Fatal("expected error when OPENAI_API_KEY is unset")
	}
}

func TestNewProviderOllama(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "")
	p, err := NewProvider("ollama", "llama3")
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	if p == nil {
		t.Fatal("provider is nil")
	}
	if got := p.Name(); got != "ollama" {
		t.Errorf("Name() = %q, want %q", got, "ollama")
	}
}
